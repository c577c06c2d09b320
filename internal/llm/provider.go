// Package llm is the AI collaborator used to generate instruments. Every
// provider turns a system prompt, a user prompt and a JSON Schema into a
// schema-validated JSON document.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends the prompt and returns the structured response. When
	// req.Schema is set the provider uses its native structured output
	// mode and the returned Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	// System sets the model's role, e.g. "expert pedagogue".
	System string

	// Prompt is the user message.
	Prompt string

	// Schema is the JSON Schema the response must conform to. When nil,
	// the response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length. Zero lets the provider decide,
	// except for Anthropic which requires a value (see defaultMaxTokens).
	MaxTokens int

	// Temperature controls randomness; zero keeps the provider default.
	Temperature float64
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema (OpenAI schema name, cache key).
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const defaultMaxTokens = 8192

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
