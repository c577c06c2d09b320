package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation including retries. Zero
	// disables it.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: Gemini, one attempt, 60s timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

// Discover fills in a provider from the well-known API key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY,
// in that order) when the configured provider has no key. It reports
// whether a usable key was found.
func (c *Config) Discover() bool {
	if c.Provider == ProviderMock || c.APIKey() != "" {
		return true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = ProviderGemini
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = ProviderOpenAI
		c.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = ProviderAnthropic
		c.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = ProviderOpenRouter
		c.OpenRouter.APIKey = k
		return true
	}
	return false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		if c.APIKey() == "" {
			return fmt.Errorf("EDUVAL_LLM_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
