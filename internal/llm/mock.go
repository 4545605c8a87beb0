package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is a canned reply for the MockProvider.
type MockReply struct {
	Content json.RawMessage
	Err     error
}

// MockProvider is a deterministic Provider for tests. It serves canned
// replies in FIFO order and records every request it sees.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	Calls   []Request
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Complete returns the next canned reply, or ErrUnavailable when the queue
// is empty.
func (m *MockProvider) Complete(_ context.Context, req Request) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.replies) == 0 {
		return nil, &ErrUnavailable{}
	}

	next := m.replies[0]
	m.replies = m.replies[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	return &Reply{Content: next.Content, Model: "mock"}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddReply appends a canned reply to the queue.
func (m *MockProvider) AddReply(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns the number of Complete calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
