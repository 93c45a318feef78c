package llm

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (rate limiting, logging, etc.).
type Middleware func(LLMClient) LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner LLMClient, mws ...Middleware) LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Logging --------

// Logging logs every generate call with its duration and outcome.
func Logging() Middleware {
	return func(next LLMClient) LLMClient {
		return &logged{next: next}
	}
}

type logged struct {
	next LLMClient
}

func (c *logged) Name() string { return c.next.Name() }
func (c *logged) Close() error { return c.next.Close() }
func (c *logged) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	log.Printf("LLM request (%s): %d bytes", c.next.Name(), len(prompt))
	text, err := c.next.Generate(ctx, prompt)
	if err != nil {
		log.Printf("LLM error (%s) after %s: %v", c.next.Name(), time.Since(start).Round(time.Millisecond), err)
		return "", err
	}
	log.Printf("LLM response (%s) after %s: %d bytes", c.next.Name(), time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}

// -------- Rate limiting --------

// RateLimit throttles generate calls to at most rps requests per second
// with the given burst. rps <= 0 disables the limiter.
func RateLimit(rps float64, burst int) Middleware {
	return func(next LLMClient) LLMClient {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = 1
		}
		return &rateLimited{next: next, rl: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next LLMClient
	rl   *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }
func (c *rateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Generate(ctx, prompt)
}
