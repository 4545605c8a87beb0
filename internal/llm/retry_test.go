package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrUnavailable{}},
		MockReply{Err: &ErrQuota{}},
		MockReply{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	reply, err := p.Complete(t.Context(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if string(reply.Content) != `{"ok":true}` {
		t.Errorf("content = %s", reply.Content)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrUnavailable{}},
		MockReply{Err: &ErrUnavailable{}},
	)
	p := WithRetry(mock, fastRetryConfig(2))

	_, err := p.Complete(t.Context(), Request{Prompt: "hi"})
	var unavail *ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected *ErrUnavailable, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_AuthNotRetried(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &ErrAuth{Err: errors.New("bad key")}})
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Complete(t.Context(), Request{Prompt: "hi"})
	var auth *ErrAuth
	if !errors.As(err, &auth) {
		t.Fatalf("expected *ErrAuth, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1 (auth errors are terminal)", mock.CallCount())
	}
}

func TestRetry_InvalidReplyRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrInvalidReply{Err: errors.New("garbage")}},
		MockReply{Err: &ErrInvalidReply{Err: errors.New("garbage again")}},
		MockReply{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig(5))

	_, err := p.Complete(t.Context(), Request{Prompt: "hi"})
	var invalid *ErrInvalidReply
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidReply, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 (one retry for invalid replies)", mock.CallCount())
	}
}

func TestRetry_ContextCancelStops(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrUnavailable{}},
		MockReply{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Hour, // would hang without cancellation
		MaxWait:     time.Hour,
		Multiplier:  1.0,
	})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		_, err := p.Complete(ctx, Request{Prompt: "hi"})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Complete did not return after cancellation")
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrQuota{RetryAfter: 30 * time.Millisecond}},
		MockReply{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig(2))

	start := time.Now()
	if _, err := p.Complete(t.Context(), Request{Prompt: "hi"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("returned after %s, expected to wait at least 30ms", elapsed)
	}
}
