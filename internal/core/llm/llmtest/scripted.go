// Package llmtest provides an in-memory LLM provider for tests.
package llmtest

import (
	"context"
	"sync"
)

// Scripted streams Chunks in order, then returns Err.
type Scripted struct {
	Chunks []string
	Err    error

	mu      sync.Mutex
	prompts []string
}

func (s *Scripted) Name() string { return "scripted" }

func (s *Scripted) StreamCompletion(ctx context.Context, prompt string, out chan<- string) error {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	for _, c := range s.Chunks {
		select {
		case out <- c:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.Err
}

// Prompts returns every prompt received so far.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
