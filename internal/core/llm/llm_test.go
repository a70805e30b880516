package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Lectio/internal/config"
	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/core/llm/llmtest"
)

func TestComplete_AccumulatesChunks(t *testing.T) {
	p := &llmtest.Scripted{Chunks: []string{"A", "B", "C"}}

	text, err := Complete(context.Background(), p, "prompt")

	require.NoError(t, err)
	assert.Equal(t, "ABC", text)
	assert.Equal(t, []string{"prompt"}, p.Prompts())
}

func TestStream_ClosesChannelThenReportsError(t *testing.T) {
	boom := errors.New("connection reset")
	p := &llmtest.Scripted{Chunks: []string{"partial"}, Err: boom}

	chunks, wait := Stream(context.Background(), p, "prompt")
	var got []string
	for c := range chunks {
		got = append(got, c)
	}

	assert.Equal(t, []string{"partial"}, got)
	assert.ErrorIs(t, wait(), boom)
}

func TestComplete_MidStreamFailureDiscardsText(t *testing.T) {
	p := &llmtest.Scripted{Chunks: []string{"A", "B"}, Err: errors.New("throttled")}

	text, err := Complete(context.Background(), p, "prompt")

	assert.Error(t, err)
	assert.Empty(t, text)
}

type fakeConverseStream struct {
	events chan types.ConverseStreamOutput
	err    error
	closed bool
}

func newFakeConverseStream(err error, events ...types.ConverseStreamOutput) *fakeConverseStream {
	ch := make(chan types.ConverseStreamOutput, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return &fakeConverseStream{events: ch, err: err}
}

func (f *fakeConverseStream) Events() <-chan types.ConverseStreamOutput { return f.events }
func (f *fakeConverseStream) Close() error { f.closed = true; return nil }
func (f *fakeConverseStream) Err() error { return f.err }

func textDelta(s string) types.ConverseStreamOutput {
	return &types.ConverseStreamOutputMemberContentBlockDelta{
		Value: types.ContentBlockDeltaEvent{
			ContentBlockIndex: aws.Int32(0),
			Delta:             &types.ContentBlockDeltaMemberText{Value: s},
		},
	}
}

func TestBedrockLLM_StreamCompletion(t *testing.T) {
	stream := newFakeConverseStream(nil,
		&types.ConverseStreamOutputMemberMessageStart{Value: types.MessageStartEvent{Role: types.ConversationRoleAssistant}},
		textDelta("A"),
		textDelta("B"),
		textDelta("C"),
		&types.ConverseStreamOutputMemberMessageStop{Value: types.MessageStopEvent{StopReason: types.StopReasonEndTurn}},
	)

	var input *bedrockruntime.ConverseStreamInput
	b := &BedrockLLM{
		params: core.GenerationParams{Model: defaultBedrockModel, Temperature: 0.99, MaxTokens: 2000},
		open: func(ctx context.Context, in *bedrockruntime.ConverseStreamInput) (converseStream, error) {
			input = in
			return stream, nil
		},
	}

	text, err := Complete(context.Background(), b, "Summarize this")

	require.NoError(t, err)
	assert.Equal(t, "ABC", text)
	assert.True(t, stream.closed)

	require.NotNil(t, input)
	assert.Equal(t, "anthropic.claude-v2", aws.ToString(input.ModelId))
	assert.InDelta(t, 0.99, aws.ToFloat32(input.InferenceConfig.Temperature), 1e-6)
	assert.Equal(t, int32(2000), aws.ToInt32(input.InferenceConfig.MaxTokens))
	require.Len(t, input.Messages, 1)
	assert.Equal(t, types.ConversationRoleUser, input.Messages[0].Role)
	assert.Equal(t, &types.ContentBlockMemberText{Value: "Summarize this"}, input.Messages[0].Content[0])
}

func TestBedrockLLM_StreamErrorAfterChunks(t *testing.T) {
	stream := newFakeConverseStream(errors.New("ModelStreamErrorException"), textDelta("half"))
	b := &BedrockLLM{
		params: core.GenerationParams{Model: "m"},
		open: func(context.Context, *bedrockruntime.ConverseStreamInput) (converseStream, error) {
			return stream, nil
		},
	}

	_, err := Complete(context.Background(), b, "p")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ModelStreamErrorException")
}

func TestBedrockLLM_OpenFails(t *testing.T) {
	b := &BedrockLLM{
		params: core.GenerationParams{Model: "m"},
		open: func(context.Context, *bedrockruntime.ConverseStreamInput) (converseStream, error) {
			return nil, errors.New("AccessDeniedException")
		},
	}

	_, err := Complete(context.Background(), b, "p")

	assert.ErrorContains(t, err, "bedrock converse stream")
}

func TestOpenAILLM_StreamCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range []string{"A", "B", "C"} {
			fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p, err := NewOpenAILLM("test-key", srv.URL+"/v1", core.GenerationParams{Temperature: 0.99, MaxTokens: 2000})
	require.NoError(t, err)

	text, err := Complete(context.Background(), p, "prompt")

	require.NoError(t, err)
	assert.Equal(t, "ABC", text)
	assert.Equal(t, "openai:gpt-4o-mini", p.Name())
}

func TestOpenAILLM_RequiresKey(t *testing.T) {
	_, err := NewOpenAILLM("", "", core.GenerationParams{})
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}

	p, err := NewProvider(context.Background(), &config.Config{LLMProvider: "bedrock", LLMTemperature: 0.99, LLMMaxTokens: 2000}, awsCfg)
	require.NoError(t, err)
	assert.Equal(t, "bedrock:anthropic.claude-v2", p.Name())

	_, err = NewProvider(context.Background(), &config.Config{LLMProvider: "openai"}, awsCfg)
	assert.Error(t, err, "openai without key")

	_, err = NewProvider(context.Background(), &config.Config{LLMProvider: "llama.cpp"}, awsCfg)
	assert.ErrorContains(t, err, "unknown LLM provider")
}
