// Package classify provides the client abstraction for the external
// pretrained sequence classifier. The model itself is an opaque collaborator
// reached over HTTP; this package only transports text in and raw logits out.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// Client is an abstraction over sequence classifier providers.
type Client interface {
	// Logits sends text through the classifier and returns the raw,
	// unnormalized scores of the five-label head.
	Logits(ctx context.Context, text string) ([]float64, error)
	// Close releases any resources held by the client
	Close() error
}

// Error indicates a classifier invocation failure for one candidate. It is
// never retried; the pipeline isolates it to the affected candidate.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPClient implements Client against a JSON inference endpoint.
type HTTPClient struct {
	httpClient *http.Client
	config     *Config
}

// NewHTTPClient creates a classifier client for the configured endpoint.
func NewHTTPClient(config *Config) (*HTTPClient, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Endpoint == "" {
		return nil, fmt.Errorf("classifier endpoint is required")
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}, nil
}

type inferenceRequest struct {
	Model string `json:"model,omitempty"`
	Text  string `json:"text"`
}

type inferenceResponse struct {
	Logits []float64 `json:"logits"`
}

// Logits posts the text to the inference endpoint and returns the raw scores.
func (c *HTTPClient) Logits(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(inferenceRequest{Model: c.config.Model, Text: text})
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{Err: fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))}
	}

	var decoded inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(decoded.Logits) != types.NumLabels {
		return nil, &Error{Err: fmt.Errorf("expected %d logits, got %d", types.NumLabels, len(decoded.Logits))}
	}

	return decoded.Logits, nil
}

// Close releases resources held by the client.
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
