package generate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
)

// Params describe what to generate.
type Params struct {
	Level   string `json:"level"`
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
}

// Config tunes generation requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// Generator composes Builder, the AI provider and MapResponse.
type Generator struct {
	provider llm.Provider
	builder  *Builder
	cfg      Config
	log      *zap.Logger
}

// NewGenerator returns a Generator. log may be nil.
func NewGenerator(provider llm.Provider, builder *Builder, cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{provider: provider, builder: builder, cfg: cfg, log: log}
}

// Generate produces a new instrument of the given kind. Provider failures
// are returned as *TransportError, unusable replies as *MappingError.
func (g *Generator) Generate(ctx context.Context, kind instrument.Kind, p Params) (instrument.Instrument, error) {
	req := g.builder.Build(kind, p.Level, p.Subject, p.Topic)
	req.MaxTokens = g.cfg.MaxTokens
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "generate-"+string(kind)), req)
	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		g.log.Error("generation mapping failure",
			zap.String("kind", string(kind)),
			zap.ByteString("content", inv.Content),
			zap.Error(err))
		return nil, &MappingError{Kind: kind, Err: err}
	}
	if err != nil {
		g.log.Error("generation transport failure",
			zap.String("kind", string(kind)), zap.Error(err))
		return nil, &TransportError{Kind: kind, Err: err}
	}

	inst, err := MapResponse(kind, resp.Content, Context{Subject: p.Subject, Level: p.Level})
	if err != nil {
		g.log.Error("generation mapping failure",
			zap.String("kind", string(kind)),
			zap.ByteString("content", resp.Content),
			zap.Error(err))
		return nil, err
	}

	g.log.Info("instrument generated",
		zap.String("kind", string(kind)),
		zap.Int("elements", len(inst.IDs())),
		zap.String("model", resp.Model))
	return inst, nil
}
