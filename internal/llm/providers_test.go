package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestAnthropicProvider_HappyPath(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": checklistJSON},
		},
		"model":       "claude-haiku-4-5",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		System: "You are an expert pedagogue.",
		Prompt: "Generate a checklist.",
		Schema: checklistSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 80 {
		t.Fatalf("expected 80 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if string(resp.Content) != checklistJSON {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	srv := jsonServer(t, http.StatusTooManyRequests, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
	})
	p, _ := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4.1-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": checklistJSON},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	})

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "gpt-4.1-mini" {
		t.Fatalf("friendly name not resolved: %q", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{Prompt: "Generate a checklist.", Schema: checklistSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 65 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4.1-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `{"title":"x"}`},
			"finish_reason": "stop",
		}},
	})
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: checklistSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4.1-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `{"title":"x","ite`},
			"finish_reason": "length",
		}},
	})
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: checklistSchema()})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.5-flash" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": checklistJSON}},
			},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	})

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "test-key", Model: "gemini-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		System: "You are an expert pedagogue.",
		Prompt: "Generate a checklist.",
		Schema: checklistSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "gemini-3-flash-preview" || resp.Usage.TotalTokens != 46 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestModelMapping(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{geminiModels, "gemini-flash", "gemini-3-flash-preview"},
		{geminiModels, "gemini-2.5-pro", "gemini-2.5-pro"},
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-5"},
		{openaiModels, "gpt", "gpt-4.1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":   map[string]any{"type": "string", "enum": []string{"multiple-choice", "true-false"}},
						"points": map[string]any{"type": "number"},
					},
					"required": []string{"type", "points"},
				},
			},
		},
		"required":             []string{"title", "questions"},
		"additionalProperties": false,
	})

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	if got := schema.PropertyOrdering; len(got) != 2 || got[0] != "title" {
		t.Fatalf("unexpected property ordering: %v", got)
	}
	item := schema.Properties["questions"].Items
	if item.Properties["points"].Type != "NUMBER" {
		t.Fatalf("expected NUMBER for points, got %s", item.Properties["points"].Type)
	}
	if len(item.Properties["type"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %v", item.Properties["type"].Enum)
	}
}
