// Package server provides the HTTP REST API for the CV analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/classify"
	"github.com/jonathan/cv-analyzer/internal/extract"
)

// ErrBatchNotFound indicates an unknown batch ID
type ErrBatchNotFound struct {
	BatchID uuid.UUID
}

func (e *ErrBatchNotFound) Error() string {
	return fmt.Sprintf("batch not found: %s", e.BatchID)
}

// ErrInvalidUpload indicates a malformed upload request
type ErrInvalidUpload struct {
	Reason string
}

func (e *ErrInvalidUpload) Error() string {
	return fmt.Sprintf("invalid upload: %s", e.Reason)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound      *ErrBatchNotFound
		invalidUpload *ErrInvalidUpload
		extraction    *extract.ExtractionError
		unsupported   *extract.UnsupportedTypeError
		classifier    *classify.Error
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidUpload), errors.As(err, &extraction), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &classifier):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
