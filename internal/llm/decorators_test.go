package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eduval/eduval/internal/store"
)

func retryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestMockProvider_FIFOAndRecording(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = mock.Generate(context.Background(), Request{Prompt: "second"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %T", err)
	}

	calls := mock.Calls()
	if len(calls) != 3 || calls[0].System != "sys" || calls[1].Prompt != "second" {
		t.Fatalf("unexpected recorded calls: %+v", calls)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":1}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: checklistSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestRetry_DefaultIsSingleAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, DefaultConfig().Retry, 0)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p := WithRetry(mock, RetryConfig{}, 0)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil || resp == nil {
		t.Fatalf("expected a response, got %v, %v", resp, err)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, retryConfig(3), 0)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	mock := NewMockProvider(bad, bad, bad)
	p := WithRetry(mock, retryConfig(3), 0)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	p := WithRetry(mock, retryConfig(3), 0)

	_, err := p.Generate(context.Background(), Request{})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) || mock.CallCount() != 1 {
		t.Fatalf("expected one non-retried ErrMaxTokensExceeded, got %v after %d calls", err, mock.CallCount())
	}
}

func TestRetry_TimeoutBoundsCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	mock.Block = make(chan struct{})
	p := WithRetry(mock, retryConfig(1), 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

type memRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (m *memRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return m.err
}

func TestLogging_RecordsEvent(t *testing.T) {
	repo := &memRepo{}
	core, logs := observer.New(zap.InfoLevel)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(checklistJSON),
		Usage:   Usage{InputTokens: 7, OutputTokens: 9},
	})
	p := WithLogging(mock, "mock", repo, zap.New(core))

	ctx := WithPurpose(context.Background(), "generate-checklist")
	if _, err := p.Generate(ctx, Request{System: "sys", Prompt: "make it", Schema: checklistSchema()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "generate-checklist" || !e.Success || e.OutputTokens != 9 || e.ResponseBody != checklistJSON {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.RequestBody == "" {
		t.Fatal("expected request body to be captured")
	}
	if logs.FilterMessage("llm request").Len() != 1 {
		t.Fatalf("expected one info log, got %v", logs.All())
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &memRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := WithLogging(NewMockProvider(), "mock", nil, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected failure log, got %v", logs.All())
	}
}

func TestPurposeDefault(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("PurposeFrom() = %q", got)
	}
}
