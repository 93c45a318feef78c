package llm

import (
	"context"
	"testing"
	"time"
)

func TestWrap_AppliesLeftToRight(t *testing.T) {
	inner := NewFakeClient(`{"movies":["A","B","C"]}`)
	wrapped := Wrap(inner, Logging(), RateLimit(0, 0))

	text, err := wrapped.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != inner.Response {
		t.Fatalf("text = %q", text)
	}
	if wrapped.Name() != inner.Name() {
		t.Fatalf("name = %q", wrapped.Name())
	}
}

func TestRateLimit_DisabledIsPassthrough(t *testing.T) {
	inner := NewFakeClient("")
	if got := RateLimit(0, 5)(inner); got != LLMClient(inner) {
		t.Fatal("disabled limiter should return the inner client unchanged")
	}
}

func TestRateLimit_ThrottlesBeyondBurst(t *testing.T) {
	inner := NewFakeClient("")
	limited := RateLimit(20, 1)(inner)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := limited.Generate(context.Background(), "p"); err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
	}
	// burst of 1 at 20 rps: two waits of ~50ms each
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("three calls completed in %s, limiter not applied", elapsed)
	}
}

func TestRateLimit_RespectsContext(t *testing.T) {
	inner := NewFakeClient("")
	limited := RateLimit(0.001, 1)(inner)

	// consume the burst token
	if _, err := limited.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := limited.Generate(ctx, "p"); err == nil {
		t.Fatal("expected context error while waiting for a token")
	}
}
