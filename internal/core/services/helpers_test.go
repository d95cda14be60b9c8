package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
)

// stubEmbedder is a deterministic embedder whose failures can be scripted.
type stubEmbedder struct {
	dims int

	mu sync.Mutex

	// failNext makes the next n calls fail with err before recovering.
	failNext int
	err      error

	calls int
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{dims: 8}
}

func (e *stubEmbedder) fail(n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failNext = n
	e.err = err
}

func (e *stubEmbedder) shouldFail() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.failNext > 0 {
		e.failNext--
		return e.err
	}
	return nil
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if err := e.shouldFail(); err != nil {
		return nil, err
	}
	return hashVector(text, e.dims), nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := e.shouldFail(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashVector(t, e.dims)
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int            { return e.dims }
func (e *stubEmbedder) ModelName() string          { return "stub-embedder" }
func (e *stubEmbedder) Ping(context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

// hashVector maps text to a stable unit vector so similar strings stay
// identical across calls.
func hashVector(text string, dims int) []float32 {
	v := make([]float32, dims)
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()
	for i := range v {
		seed = seed*1664525 + 1013904223
		v[i] = float32(seed%1000) / 1000.0
	}
	var norm float64
	for _, f := range v {
		norm += float64(f) * float64(f)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// stubLLM returns a templated response and can be scripted to fail.
type stubLLM struct {
	mu sync.Mutex

	failNext int
	err      error

	lastRequest driven.GenerationRequest
	calls       int
}

func (l *stubLLM) fail(n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failNext = n
	l.err = err
}

func (l *stubLLM) Generate(_ context.Context, req driven.GenerationRequest) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	l.lastRequest = req
	if l.failNext > 0 {
		l.failNext--
		return "", l.err
	}
	return fmt.Sprintf("answer to %q with %d context chunks", req.UserMessage, len(req.Context)), nil
}

func (l *stubLLM) ModelName() string          { return "stub-llm" }
func (l *stubLLM) Ping(context.Context) error { return nil }
func (l *stubLLM) Close() error               { return nil }

var (
	_ driven.EmbeddingService = (*stubEmbedder)(nil)
	_ driven.LLMService       = (*stubLLM)(nil)
)

// fastRetry keeps retry loops quick in tests.
func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: 1, MaxInterval: 1}
}

// turn builds a conversation turn for classifier tests.
func turn(role domain.Role, text string, confidence float64) domain.ConversationTurn {
	return domain.ConversationTurn{Role: role, Text: text, Confidence: confidence}
}
