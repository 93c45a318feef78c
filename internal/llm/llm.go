package llm

import (
	"context"
	"errors"
)

// LLMClient is the single capability the pipeline needs from a provider:
// hand it a prompt, get free text back. Cross-cutting concerns (logging,
// rate limiting) are applied via Middleware, never inside a client.
// Clients must not retry; retry policy belongs to the caller.
type LLMClient interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Failure taxonomy. Callers branch with errors.Is; the concrete client
// decides which transport/status conditions map to which sentinel.
var (
	ErrUnauthorized  = errors.New("llm: unauthorized")
	ErrQuotaExceeded = errors.New("llm: quota exceeded")
	ErrUnavailable   = errors.New("llm: provider unavailable")
	ErrEmptyResponse = errors.New("llm: empty response from model")
)
