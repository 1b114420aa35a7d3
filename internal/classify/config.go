package classify

import "time"

// DefaultModel is the pretrained checkpoint the inference endpoint serves by
// default: a five-label sequence classification head, used without
// fine-tuning.
const DefaultModel = "distilbert-base-uncased"

// Config holds the inference endpoint configuration.
type Config struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// DefaultConfig returns the default classifier configuration. The endpoint
// must still be provided by the caller (flag, config file, or CLASSIFIER_URL).
func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Timeout: 60 * time.Second,
	}
}

// WithEndpoint returns a copy of the config pointing at the given endpoint.
func (c *Config) WithEndpoint(endpoint string) *Config {
	out := *c
	out.Endpoint = endpoint
	return &out
}
