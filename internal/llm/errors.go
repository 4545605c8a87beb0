package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrAuth indicates the endpoint rejected our credentials (401/403).
// Never retried; callers surface a configuration message, not a blanket error.
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("provider rejected credentials: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrQuota indicates quota or rate-limit exhaustion (429 or 402-equivalent).
// RetryAfter is honored by the retry decorator when the endpoint supplied one.
type ErrQuota struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrQuota) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider quota exhausted (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("provider quota exhausted: %v", e.Err)
}

func (e *ErrQuota) Unwrap() error { return e.Err }

// ErrInvalidReply indicates the model returned content with no extractable
// JSON or JSON that fails the requested schema.
type ErrInvalidReply struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidReply) Error() string {
	return fmt.Sprintf("invalid model reply: %v", e.Err)
}

func (e *ErrInvalidReply) Unwrap() error { return e.Err }

// ErrUnavailable indicates the endpoint is unreachable or failing (network
// errors, 5xx).
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrTruncated indicates the reply was cut off at the MaxTokens limit.
type ErrTruncated struct {
	Content json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return "model reply truncated at max tokens"
}
