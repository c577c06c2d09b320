package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is returned when the provider throttles the request (429).
// RetryAfter is zero when the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when the reply is not JSON or does not
// match the request schema. Content holds the raw reply for the audit log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model reply: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is returned when the provider cannot be reached
// or fails on its side. The mock returns it with a nil Err once its queue
// is empty.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "AI provider unavailable"
	}
	return fmt.Sprintf("AI provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is returned when the reply was cut at the token
// limit. Instruments are never built from partial content.
type ErrMaxTokensExceeded struct {
	Limit   int // 0 when the provider default applied
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("model reply truncated at %d tokens", e.Limit)
	}
	return "model reply truncated at the token limit"
}

// Reason classifies err for logs and the audit trail: "rate_limit",
// "invalid_response", "unavailable", "max_tokens", "timeout", "canceled"
// or "other". A nil error has no reason.
func Reason(err error) string {
	var (
		rl  *ErrRateLimit
		inv *ErrInvalidResponse
		un  *ErrProviderUnavailable
		mt  *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &inv):
		return "invalid_response"
	case errors.As(err, &mt):
		return "max_tokens"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &un):
		return "unavailable"
	}
	return "other"
}
