package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the generative backend. It is built once at
// startup and injected into the provider constructors; core logic never reads
// the environment directly.
type Config struct {
	// Backend selects the SDK. Values: "anthropic", "openai", "gemini", "mock".
	Backend string

	// APIKey authenticates against the selected backend. An empty key means
	// AI features are unconfigured and callers fall back to rule-based output.
	APIKey string

	// Model is the model identifier, resolved through the backend's friendly
	// name table when one matches.
	Model string

	// BaseURL overrides the endpoint for OpenAI-compatible gateways.
	BaseURL string

	// Timeout bounds a single request, retries included.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults and no API key.
func DefaultConfig() Config {
	return Config{
		Backend: "openai",
		Model:   "",
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from STUDIQ_AI_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDIQ_AI_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("STUDIQ_AI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STUDIQ_AI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STUDIQ_AI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("STUDIQ_AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// Configured reports whether an AI backend is usable. The mock backend
// counts as configured so tests can exercise the primary path.
func (c Config) Configured() bool {
	return c.Backend == "mock" || c.APIKey != ""
}

// Validate checks the config for a selected backend.
func (c Config) Validate() error {
	switch c.Backend {
	case "anthropic", "openai", "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("STUDIQ_AI_API_KEY is required for the %s backend", c.Backend)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown AI backend: %q", c.Backend)
	}
	return nil
}
