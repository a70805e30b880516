package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/markdave123-py/Lectio/internal/core"
)

type GeminiLLM struct {
	client *genai.Client
	params core.GenerationParams
}

func NewGeminiLLM(ctx context.Context, apiKey string, params core.GenerationParams) (*GeminiLLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if params.Model == "" {
		params.Model = "gemini-1.5-flash"
	}
	return &GeminiLLM{client: cl, params: params}, nil
}

func (g *GeminiLLM) Name() string { return "gemini:" + g.params.Model }

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiLLM) StreamCompletion(ctx context.Context, prompt string, out chan<- string) error {
	m := g.client.GenerativeModel(g.params.Model)
	m.SetTemperature(g.params.Temperature)
	m.SetMaxOutputTokens(int32(g.params.MaxTokens))

	iter := m.GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, p := range resp.Candidates[0].Content.Parts {
			t, ok := p.(genai.Text)
			if !ok || t == "" {
				continue
			}
			select {
			case out <- string(t):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

var _ core.LLMProvider = (*GeminiLLM)(nil)
