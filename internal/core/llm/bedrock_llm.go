package llm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/rs/zerolog/log"

	"github.com/markdave123-py/Lectio/internal/core"
)

const defaultBedrockModel = "anthropic.claude-v2"

// converseStream is satisfied by *bedrockruntime.ConverseStreamEventStream.
type converseStream interface {
	Events() <-chan types.ConverseStreamOutput
	Close() error
	Err() error
}

type BedrockLLM struct {
	params core.GenerationParams
	open   func(ctx context.Context, in *bedrockruntime.ConverseStreamInput) (converseStream, error)
}

func NewBedrockLLM(awsCfg aws.Config, params core.GenerationParams) *BedrockLLM {
	if params.Model == "" {
		params.Model = defaultBedrockModel
	}
	client := bedrockruntime.NewFromConfig(awsCfg)

	return &BedrockLLM{
		params: params,
		open: func(ctx context.Context, in *bedrockruntime.ConverseStreamInput) (converseStream, error) {
			out, err := client.ConverseStream(ctx, in)
			if err != nil {
				return nil, err
			}
			return out.GetStream(), nil
		},
	}
}

func (b *BedrockLLM) Name() string { return "bedrock:" + b.params.Model }

func (b *BedrockLLM) buildInput(prompt string) *bedrockruntime.ConverseStreamInput {
	return &bedrockruntime.ConverseStreamInput{
		ModelId: aws.String(b.params.Model),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: &types.InferenceConfiguration{
			Temperature: aws.Float32(b.params.Temperature),
			MaxTokens:   aws.Int32(int32(b.params.MaxTokens)),
		},
	}
}

// StreamCompletion forwards every text delta of a ConverseStream call.
func (b *BedrockLLM) StreamCompletion(ctx context.Context, prompt string, out chan<- string) error {
	stream, err := b.open(ctx, b.buildInput(prompt))
	if err != nil {
		return fmt.Errorf("bedrock converse stream: %w", err)
	}
	defer stream.Close()

	for event := range stream.Events() {
		switch v := event.(type) {
		case *types.ConverseStreamOutputMemberContentBlockDelta:
			delta, ok := v.Value.Delta.(*types.ContentBlockDeltaMemberText)
			if !ok || delta.Value == "" {
				continue
			}
			select {
			case out <- delta.Value:
			case <-ctx.Done():
				return ctx.Err()
			}
		case *types.ConverseStreamOutputMemberMessageStop:
			log.Debug().Str("model", b.params.Model).Str("stop_reason", string(v.Value.StopReason)).Msg("bedrock stream stopped")
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("bedrock stream: %w", err)
	}
	return nil
}

var _ core.LLMProvider = (*BedrockLLM)(nil)
