package llm

import (
	"context"
	"sync/atomic"
	"time"
)

// FakeClient returns a canned response (or error) for offline runs and
// tests. An optional Delay simulates a slow provider.
type FakeClient struct {
	Response string
	Err      error
	Delay    time.Duration

	calls atomic.Int64
}

func NewFakeClient(response string) *FakeClient {
	if response == "" {
		response = `{"movies":["The Matrix","Inception","Interstellar"]}`
	}
	return &FakeClient{Response: response}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many times Generate ran, including calls whose
// caller gave up waiting.
func (f *FakeClient) Calls() int64 { return f.calls.Load() }

func (f *FakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}
