// Package config loads service settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

type Config struct {
	Port     string `validate:"required,numeric"`
	Provider string `validate:"oneof=openai gemini anthropic"`
	Model    string

	OpenAIKey    string `masq:"secret" validate:"required_if=Provider openai,required_with=AssistantID"`
	OpenAIURL    string `validate:"omitempty,url"`
	GeminiKey    string `masq:"secret" validate:"required_if=Provider gemini"`
	AnthropicKey string `masq:"secret" validate:"required_if=Provider anthropic"`

	Temperature float64 `validate:"gte=0,lte=2"`

	AssistantID     string
	PollInterval    time.Duration `validate:"gt=0"`
	PollMaxAttempts int           `validate:"gt=0"`
	PollTimeout     time.Duration `validate:"gt=0"`

	ChromePath string
	LogLevel   string `validate:"oneof=debug info warn error"`
	LogFormat  string `validate:"oneof=json text"`
	GinMode    string `validate:"omitempty,oneof=debug release test"`
}

// Defaults returns the configuration used when no variable is set.
func Defaults() Config {
	return Config{
		Port:            "8080",
		Provider:        "openai",
		Temperature:     0.7,
		PollInterval:    time.Second,
		PollMaxAttempts: 60,
		PollTimeout:     90 * time.Second,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// LoadDotEnv reads an optional .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return goerr.Wrap(err, "failed to load .env")
	}
	return nil
}

// Load builds a Config from the environment on top of Defaults. It does not
// validate; call Validate once flag overrides are applied.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &cfg.Port)
	str("LLM_PROVIDER", &cfg.Provider)
	cfg.Provider = strings.ToLower(cfg.Provider)
	str("LLM_MODEL", &cfg.Model)
	str("OPENAI_API_KEY", &cfg.OpenAIKey)
	str("OPENAI_BASE_URL", &cfg.OpenAIURL)
	str("GEMINI_API_KEY", &cfg.GeminiKey)
	str("ANTHROPIC_API_KEY", &cfg.AnthropicKey)
	str("OPENAI_ASSISTANT_ID", &cfg.AssistantID)
	str("CHROME_PATH", &cfg.ChromePath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("GIN_MODE", &cfg.GinMode)

	var raw string
	if str("LLM_TEMPERATURE", &raw); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, goerr.Wrap(err, "invalid LLM_TEMPERATURE", goerr.V("value", raw))
		}
		cfg.Temperature = t
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ASSISTANT_POLL_INTERVAL", &cfg.PollInterval},
		{"ASSISTANT_POLL_TIMEOUT", &cfg.PollTimeout},
	}
	for _, d := range durations {
		raw = ""
		if str(d.key, &raw); raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, goerr.Wrap(err, "invalid duration", goerr.V("key", d.key), goerr.V("value", raw))
		}
		*d.dst = v
	}

	raw = ""
	if str("ASSISTANT_POLL_MAX_ATTEMPTS", &raw); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, goerr.Wrap(err, "invalid ASSISTANT_POLL_MAX_ATTEMPTS", goerr.V("value", raw))
		}
		cfg.PollMaxAttempts = n
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints, including the API key required by the
// selected provider.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return goerr.Wrap(err, "invalid configuration", goerr.V("fields", strings.Join(fields, ", ")))
		}
		return goerr.Wrap(err, "invalid configuration")
	}
	return nil
}

// UseAssistant reports whether the threaded assistant gateway is configured.
func (c Config) UseAssistant() bool {
	return c.AssistantID != ""
}
