package llm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/markdave123-py/Lectio/internal/config"
	"github.com/markdave123-py/Lectio/internal/core"
)

const (
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
)

// NewProvider builds the LLM named by LLM_PROVIDER with the configured
// sampling parameters.
func NewProvider(ctx context.Context, cfg *config.Config, awsCfg aws.Config) (core.LLMProvider, error) {
	params := core.GenerationParams{
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}

	switch cfg.LLMProvider {
	case "", ProviderBedrock:
		return NewBedrockLLM(awsCfg, params), nil
	case ProviderGemini:
		return NewGeminiLLM(ctx, cfg.GeminiAPIKey, params)
	case ProviderOpenAI:
		return NewOpenAILLM(cfg.OpenAIAPIKey, "", params)
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.LLMProvider)
	}
}
