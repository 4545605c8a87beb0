package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds a Provider from configuration, wrapped with logging,
// retry, and timeout middleware: caller → timeout → retry → logging → backend.
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Backend {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case "openai":
		base, err = NewOpenAIProvider(cfg)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", cfg.Backend, err)
	}

	return WithTimeout(WithRetry(WithLogging(base, log), cfg.Retry), cfg.Timeout), nil
}
