// Package recommend implements the recommendation resolution pipeline:
// input validation, prompt construction, a bounded-time provider call,
// lenient response parsing, the fallback policy, and persistence.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"movierec/internal/llm"
)

const (
	minInputRunes = 3
	minMovies     = 3
	maxMovies     = 5
)

// ErrInvalidInput is the only error a well-formed caller sees besides a
// persistence failure. Invalid input is rejected before any provider
// call or log write.
var ErrInvalidInput = errors.New("recommend: user_input is required (min 3 chars)")

// errTimeout marks a provider call that lost the race against the
// deadline.
var errTimeout = errors.New("recommend: provider deadline elapsed")

// Result is the response payload for one resolution attempt. Note is
// set only when the fallback path was used.
type Result struct {
	UserInput string   `json:"user_input"`
	Movies    []string `json:"movies"`
	Note      string   `json:"note,omitempty"`
}

// Log is the append-only store of resolution attempts.
type Log interface {
	Append(ctx context.Context, userInput string, movies []string, ts time.Time) (int64, error)
}

// ResolverConfig carries the pipeline knobs.
type ResolverConfig struct {
	// Timeout bounds the provider call. Zero means the 12 s default.
	Timeout time.Duration
	// CacheSize bounds the raw-response LRU keyed by cleaned input.
	// Zero disables caching.
	CacheSize int
}

// Resolver orchestrates one resolution attempt per call. It holds no
// per-request state; concurrent calls need no coordination.
type Resolver struct {
	client  llm.LLMClient // nil when no provider is configured
	log     Log
	timeout time.Duration
	cache   *lru.Cache[string, string]
	now     func() time.Time
}

func NewResolver(client llm.LLMClient, log Log, cfg ResolverConfig) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	var cache *lru.Cache[string, string]
	if cfg.CacheSize > 0 {
		cache, _ = lru.New[string, string](cfg.CacheSize)
	}
	return &Resolver{
		client:  client,
		log:     log,
		timeout: cfg.Timeout,
		cache:   cache,
		now:     time.Now,
	}
}

// Resolve runs the full pipeline for one raw input. Every failure past
// validation degrades to the fallback list; the only errors returned
// are ErrInvalidInput and a failed log write.
func (r *Resolver) Resolve(ctx context.Context, rawInput string) (*Result, error) {
	cleaned := strings.TrimSpace(rawInput)
	if utf8.RuneCountInString(cleaned) < minInputRunes {
		return nil, ErrInvalidInput
	}

	if r.client == nil {
		return r.fallback(ctx, cleaned, "provider not configured")
	}

	text, err := r.generate(ctx, cleaned)
	if err != nil {
		return r.fallback(ctx, cleaned, r.failureReason(err))
	}

	titles, err := ParseMovies(text)
	if err == nil {
		titles = cleanTitles(titles)
	}
	if err != nil || len(titles) < minMovies {
		return r.fallback(ctx, cleaned, "provider returned bad format")
	}

	return r.finish(ctx, cleaned, titles, "")
}

// generate races the provider call against the deadline. The loser is
// detached, not cancelled: a reply arriving after the timeout is
// discarded and never persisted.
func (r *Resolver) generate(ctx context.Context, cleaned string) (string, error) {
	if r.cache != nil {
		if text, ok := r.cache.Get(cleaned); ok {
			return text, nil
		}
	}

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := r.client.Generate(ctx, BuildPrompt(cleaned))
		ch <- outcome{text: text, err: err}
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()
	select {
	case out := <-ch:
		if out.err != nil {
			return "", out.err
		}
		if r.cache != nil {
			r.cache.Add(cleaned, out.text)
		}
		return out.text, nil
	case <-timer.C:
		return "", errTimeout
	}
}

func (r *Resolver) failureReason(err error) string {
	switch {
	case errors.Is(err, errTimeout):
		return fmt.Sprintf("provider timeout after %s", r.timeout)
	case errors.Is(err, llm.ErrUnauthorized):
		return "provider rejected credentials"
	case errors.Is(err, llm.ErrQuotaExceeded):
		return "provider quota exceeded"
	case errors.Is(err, llm.ErrUnavailable):
		return "provider unavailable"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "provider returned bad format"
	default:
		return "provider error: " + err.Error()
	}
}

func (r *Resolver) fallback(ctx context.Context, cleaned, reason string) (*Result, error) {
	return r.finish(ctx, cleaned, Fallback(), "Fallback used: "+reason)
}

// finish writes the one record every non-rejected resolution produces,
// then assembles the response. A failed write is the only hard error
// past validation; a dropped audit record must be visible to the
// caller.
func (r *Resolver) finish(ctx context.Context, cleaned string, titles []string, note string) (*Result, error) {
	if _, err := r.log.Append(ctx, cleaned, titles, r.now()); err != nil {
		return nil, fmt.Errorf("recommend: persist result: %w", err)
	}
	return &Result{UserInput: cleaned, Movies: titles, Note: note}, nil
}

// cleanTitles truncates to the first five entries, trims each, and
// drops any left blank.
func cleanTitles(titles []string) []string {
	if len(titles) > maxMovies {
		titles = titles[:maxMovies]
	}
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
