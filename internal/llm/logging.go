package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/store"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels requests made with ctx, e.g. "generate-rubric".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider records every request in the audit log and the
// structured log.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps a Provider. repo may be nil, in which case requests
// are only written to log.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("provider", l.provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = Reason(err) + ": " + err.Error()
		l.log.Warn("llm request failed", append(fields, zap.String("reason", Reason(err)), zap.Error(err))...)
	} else {
		l.log.Info("llm request", fields...)
	}

	if l.repo != nil {
		// The audit log must never fail the request itself.
		if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Warn("failed to record llm request", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	b.WriteString("[user]\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n\n")

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
