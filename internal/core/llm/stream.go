package llm

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Lectio/internal/core"
)

// Stream runs the provider as a producer and hands back its chunks.
//
// The channel is closed once the provider returns, which is the end-of-stream
// signal; wait then reports whether the stream ended cleanly. The consumer
// must drain the channel or cancel ctx.
func Stream(ctx context.Context, p core.LLMProvider, prompt string) (<-chan string, func() error) {
	g, gctx := errgroup.WithContext(ctx)
	out := make(chan string, 16)

	g.Go(func() error {
		defer close(out)
		return p.StreamCompletion(gctx, prompt, out)
	})

	return out, g.Wait
}

// Collect accumulates chunks until the channel is closed.
func Collect(chunks <-chan string) string {
	var sb strings.Builder
	for c := range chunks {
		sb.WriteString(c)
	}
	return sb.String()
}

// Complete is Stream followed by Collect. Partial text is discarded on error.
func Complete(ctx context.Context, p core.LLMProvider, prompt string) (string, error) {
	chunks, wait := Stream(ctx, p, prompt)
	text := Collect(chunks)
	if err := wait(); err != nil {
		return "", err
	}
	return text, nil
}
