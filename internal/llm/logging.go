package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// loggingProvider decorates a Provider with structured request logging.
// Logging never fails the request.
type loggingProvider struct {
	inner Provider
	log   *zap.Logger
}

// WithLogging wraps a Provider so every call is logged with latency, token
// usage, and outcome.
func WithLogging(p Provider, log *zap.Logger) Provider {
	return &loggingProvider{inner: p, log: log}
}

func (l *loggingProvider) Complete(ctx context.Context, req Request) (*Reply, error) {
	start := time.Now()

	reply, err := l.inner.Complete(ctx, req)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
	}
	if req.Schema != nil {
		fields = append(fields, zap.String("schema", req.Schema.Name))
	}

	if err != nil {
		l.log.Warn("ai request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields,
		zap.Int("input_tokens", reply.Usage.InputTokens),
		zap.Int("output_tokens", reply.Usage.OutputTokens),
	)
	l.log.Debug("ai request completed", fields...)

	return reply, nil
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
