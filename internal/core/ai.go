package core

import "context"

// LLMProvider streams a completion for a single rendered prompt.
//
// Every text chunk is sent on out in order. StreamCompletion returns nil once
// the provider signals end-of-stream and a non-nil error on any failure,
// including one that happens after some chunks were already sent. It never
// closes out; the caller owns the channel.
type LLMProvider interface {
	StreamCompletion(ctx context.Context, prompt string, out chan<- string) error
	Name() string
}

// GenerationParams are the sampling settings every provider is built with.
type GenerationParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
}
