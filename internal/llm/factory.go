package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base. repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, repo, log)
	return WithRetry(logged, cfg.Retry, cfg.Timeout), nil
}
