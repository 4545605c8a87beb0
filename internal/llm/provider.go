package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a generative text endpoint. Implementations
// wrap a concrete SDK (Anthropic, OpenAI, Gemini) and normalize errors into
// the taxonomy in errors.go so callers can make fallback decisions without
// knowing which backend is configured.
type Provider interface {
	// Complete sends a single-turn prompt and returns the reply. When the
	// request carries a Schema, the reply Content is JSON validated against
	// it; providers tolerate JSON embedded in surrounding prose.
	Complete(ctx context.Context, req Request) (*Reply, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request is a single-turn completion request.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, is the JSON Schema the reply must conform to.
	Schema *Schema

	// MaxTokens bounds the reply length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case. Used as the structured-output
	// name where the backend supports one.
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema definition.
	Definition map[string]any
}

// Reply is the model's output.
type Reply struct {
	// Content is the reply body. With a Schema it is the extracted,
	// validated JSON object; without one it is raw text.
	Content json.RawMessage

	// Model is the model that actually served the request.
	Model string

	// Usage reports token consumption.
	Usage Usage
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
