package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/markdave123-py/Lectio/internal/core"
)

type OpenAILLM struct {
	client *openai.Client
	params core.GenerationParams
}

// NewOpenAILLM talks to api.openai.com, or to baseURL for compatible servers.
func NewOpenAILLM(apiKey, baseURL string, params core.GenerationParams) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if params.Model == "" {
		params.Model = openai.GPT4oMini
	}
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAILLM{client: openai.NewClientWithConfig(conf), params: params}, nil
}

func (p *OpenAILLM) Name() string { return "openai:" + p.params.Model }

func (p *OpenAILLM) StreamCompletion(ctx context.Context, prompt string, out chan<- string) error {
	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: p.params.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.params.Temperature,
		MaxTokens:   p.params.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("openai stream recv: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		select {
		case out <- resp.Choices[0].Delta.Content:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

var _ core.LLMProvider = (*OpenAILLM)(nil)
