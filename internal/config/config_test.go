package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"classifier_url": "http://localhost:8000/classify",
		"skills_weight": 0.7,
		"experience_weight": 0.3
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:8000/classify", cfg.ClassifierURL)
	assert.Equal(t, 0.7, cfg.SkillsWeight)
	assert.Equal(t, 0.3, cfg.ExperienceWeight)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"valid weights", Config{SkillsWeight: 0.6, ExperienceWeight: 0.4}, false},
		{"weights do not sum to one", Config{SkillsWeight: 0.6, ExperienceWeight: 0.6}, true},
		{"weight out of range", Config{SkillsWeight: 1.2, ExperienceWeight: -0.2}, true},
		{"bad url", Config{ClassifierURL: "not a url"}, true},
		{"bad port", Config{Port: 70000}, true},
		{"negative max tokens", Config{MaxTokens: -1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9090}
	defaults := Config{
		Port:             8080,
		ClassifierURL:    "http://localhost:8000/classify",
		SkillsWeight:     0.7,
		ExperienceWeight: 0.3,
		MaxTokens:        256,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit value wins
	assert.Equal(t, 9090, merged.Port)
	// Empty values are filled
	assert.Equal(t, "http://localhost:8000/classify", merged.ClassifierURL)
	assert.Equal(t, 0.7, merged.SkillsWeight)
	assert.Equal(t, 0.3, merged.ExperienceWeight)
	assert.Equal(t, 256, merged.MaxTokens)
}

func TestMergeWithDefaults_WeightsTravelAsAPair(t *testing.T) {
	cfg := Config{SkillsWeight: 0.9, ExperienceWeight: 0.1}
	merged := cfg.MergeWithDefaults(Config{SkillsWeight: 0.5, ExperienceWeight: 0.5})

	assert.Equal(t, 0.9, merged.SkillsWeight)
	assert.Equal(t, 0.1, merged.ExperienceWeight)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CLASSIFIER_URL", "http://inference:8000/classify")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("API_KEY", "secret")
	t.Setenv("PORT", "3000")

	cfg := FromEnv()

	assert.Equal(t, "http://inference:8000/classify", cfg.ClassifierURL)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 3000, cfg.Port)
}
