package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.Provider)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.False(t, cfg.UseAssistant())
}

func TestLoad_FromEnv(t *testing.T) {
	cfg, err := load(envLookup(map[string]string{
		"PORT":                        "9090",
		"LLM_PROVIDER":                "Gemini",
		"GEMINI_API_KEY":              "g-key",
		"LLM_TEMPERATURE":             "0.2",
		"OPENAI_ASSISTANT_ID":         "asst_123",
		"ASSISTANT_POLL_INTERVAL":     "250ms",
		"ASSISTANT_POLL_TIMEOUT":      "2m",
		"ASSISTANT_POLL_MAX_ATTEMPTS": "10",
		"LOG_FORMAT":                  "text",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-key", cfg.GeminiKey)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.PollTimeout)
	assert.Equal(t, 10, cfg.PollMaxAttempts)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.UseAssistant())
}

func TestLoad_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"LLM_TEMPERATURE":             "warm",
		"ASSISTANT_POLL_INTERVAL":     "soon",
		"ASSISTANT_POLL_MAX_ATTEMPTS": "many",
	} {
		t.Run(key, func(t *testing.T) {
			_, err := load(envLookup(map[string]string{key: value}))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.OpenAIKey = "sk-test"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"openai with key", func(*Config) {}, false},
		{"openai without key", func(c *Config) { c.OpenAIKey = "" }, true},
		{"gemini without key", func(c *Config) { c.Provider = "gemini"; c.OpenAIKey = "" }, true},
		{"gemini with key", func(c *Config) { c.Provider = "gemini"; c.OpenAIKey = ""; c.GeminiKey = "g" }, false},
		{"anthropic without key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"anthropic with key", func(c *Config) { c.Provider = "anthropic"; c.OpenAIKey = ""; c.AnthropicKey = "a" }, false},
		{"assistant needs openai key", func(c *Config) {
			c.Provider = "anthropic"
			c.AnthropicKey = "a"
			c.OpenAIKey = ""
			c.AssistantID = "asst"
		}, true},
		{"unknown provider", func(c *Config) { c.Provider = "llama" }, true},
		{"bad port", func(c *Config) { c.Port = "http" }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 3 }, true},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
