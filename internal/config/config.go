// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// weightTolerance bounds the acceptable drift of the weight sum from 1.0.
const weightTolerance = 1e-9

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment.
type Config struct {
	// Server
	Port   int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	APIKey string `json:"api_key,omitempty"`

	// Classifier
	ClassifierURL   string `json:"classifier_url,omitempty" validate:"omitempty,url"`
	ClassifierModel string `json:"classifier_model,omitempty"`

	// Scoring
	SkillsWeight     float64 `json:"skills_weight,omitempty" validate:"gte=0,lte=1"`
	ExperienceWeight float64 `json:"experience_weight,omitempty" validate:"gte=0,lte=1"`
	MaxTokens        int     `json:"max_tokens,omitempty" validate:"gte=0"`

	// Pipeline
	Concurrency int `json:"concurrency,omitempty" validate:"gte=0"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"`

	// Logging
	JSONLog bool `json:"json_log,omitempty"`
	Debug   bool `json:"debug,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Unset
// variables leave zero values to be filled by defaults.
func FromEnv() Config {
	cfg := Config{
		ClassifierURL:   os.Getenv("CLASSIFIER_URL"),
		ClassifierModel: os.Getenv("CLASSIFIER_MODEL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		APIKey:          os.Getenv("API_KEY"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// The struct tags bound each weight; the pair must also sum to 1 when
	// either is set.
	if c.SkillsWeight != 0 || c.ExperienceWeight != 0 {
		if math.Abs(c.SkillsWeight+c.ExperienceWeight-1.0) > weightTolerance {
			return fmt.Errorf("config error: 'skills_weight' and 'experience_weight' must sum to 1")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ClassifierURL == "" {
		result.ClassifierURL = defaults.ClassifierURL
	}
	if result.ClassifierModel == "" {
		result.ClassifierModel = defaults.ClassifierModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Weights travel as a pair: both zero means "use defaults".
	if result.SkillsWeight == 0 && result.ExperienceWeight == 0 {
		result.SkillsWeight = defaults.SkillsWeight
		result.ExperienceWeight = defaults.ExperienceWeight
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
