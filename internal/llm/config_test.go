package llm

import (
	"context"
	"testing"
)

func TestConfigDiscover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("expected no key to be discovered")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without key")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg = DefaultConfig()
	if !cfg.Discover() {
		t.Fatal("expected key to be discovered")
	}
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("unexpected discovery: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfigDiscoverKeepsExplicitKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "explicit"

	cfg.Discover()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("explicit provider overridden: %q", cfg.Provider)
	}
}

func TestNewProviderMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}

	cfg.Provider = "carrier-pigeon"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("google/gemini-2.5-flash"); c == nil || c.InputPerMTok != 0.3 {
		t.Fatalf("expected OpenRouter ID to resolve, got %+v", c)
	}
	if LookupCost("mock") != nil {
		t.Fatal("expected unknown model")
	}
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}
	if got := c.Cost(1_000_000, 500_000); got != 2 {
		t.Fatalf("Cost() = %v", got)
	}
}
