package llm

import (
	"context"
)

// Request is a single-turn completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Client is a minimal single-turn text generation interface used by the
// router, the summarizer and the shot-intent extractor.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Generate(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// EmbedderFunc adapts a function to Embedder.
type EmbedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float32, error) { return f(ctx, text) }
