package generate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
)

func newTestGenerator(t *testing.T, mock *llm.MockProvider) (*Generator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	g := NewGenerator(mock, NewBuilder(i18n.MustNew("en")), Config{MaxTokens: 4096, Temperature: 0.4}, zap.New(core))
	return g, logs
}

var params = Params{Level: "Grade 7", Subject: "Mathematics", Topic: "fractions"}

func TestGenerateSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(rubricReply)})
	g, logs := newTestGenerator(t, mock)

	inst, err := g.Generate(context.Background(), instrument.KindRubric, params)
	require.NoError(t, err)
	assert.Equal(t, instrument.KindRubric, inst.Kind())
	assert.Len(t, inst.IDs(), 2)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 4096, calls[0].MaxTokens)
	assert.Equal(t, 0.4, calls[0].Temperature)
	assert.Contains(t, calls[0].Prompt, "fractions")
	assert.Equal(t, 1, logs.FilterMessage("instrument generated").Len())
}

func TestGenerateTransportFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	g, logs := newTestGenerator(t, mock)

	_, err := g.Generate(context.Background(), instrument.KindExam, params)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, logs.FilterMessage("generation transport failure").Len())
}

func TestGenerateSchemaViolationIsMapping(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title":"x"}`)})
	g, logs := newTestGenerator(t, mock)

	_, err := g.Generate(context.Background(), instrument.KindChecklist, params)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, instrument.KindChecklist, me.Kind)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
	var te *TransportError
	assert.False(t, errors.As(err, &te))
	assert.Equal(t, 1, logs.FilterMessage("generation mapping failure").Len())
	assert.Zero(t, logs.FilterMessage("generation transport failure").Len())
}

func TestGenerateMappingFailure(t *testing.T) {
	// The schema would reject this reply, so strip it before the mock
	// sees the request.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title":"x","questions":[{"text":"?","type":"essay","points":1}]}`)})
	g, logs := newTestGenerator(t, mock)
	g.provider = schemaless{mock}

	_, err := g.Generate(context.Background(), instrument.KindExam, params)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	var te *TransportError
	assert.False(t, errors.As(err, &te))
	assert.Equal(t, 1, logs.FilterMessage("generation mapping failure").Len())
}

type schemaless struct{ llm.Provider }

func (s schemaless) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	req.Schema = nil
	return s.Provider.Generate(ctx, req)
}
