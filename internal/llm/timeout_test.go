package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// slowProvider blocks until its context is cancelled.
type slowProvider struct{}

func (slowProvider) Complete(ctx context.Context, _ Request) (*Reply, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeoutBoundsCall(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	start := time.Now()
	_, err := p.Complete(t.Context(), Request{Prompt: "x"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %v, deadline not enforced", elapsed)
	}
}

func TestWithTimeoutZeroDisables(t *testing.T) {
	inner := NewMockProvider(MockReply{Content: []byte(`{}`)})
	p := WithTimeout(inner, 0)
	if p != inner {
		t.Error("zero timeout should return the provider unwrapped")
	}
}
