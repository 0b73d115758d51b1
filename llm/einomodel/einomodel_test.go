package einomodel

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manabi-ai/semrag/llm"
)

// fakeChatModel records the last input and serves a canned response.
type fakeChatModel struct {
	lastInput []*schema.Message
	response  *schema.Message
	err       error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestNew_NilModel(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestCompleter_Complete(t *testing.T) {
	fake := &fakeChatModel{
		response: &schema.Message{
			Role:    schema.Assistant,
			Content: "ループは繰り返し処理です",
			ResponseMeta: &schema.ResponseMeta{
				Usage: &schema.TokenUsage{
					PromptTokens:     120,
					CompletionTokens: 40,
					TotalTokens:      160,
				},
			},
		},
	}
	completer, err := New(fake)
	require.NoError(t, err)

	resp, err := completer.Complete(context.Background(), "ループとは？",
		llm.WithTemperature(0.5), llm.WithMaxTokens(200))
	require.NoError(t, err)

	assert.Equal(t, "ループは繰り返し処理です", resp.Content)
	assert.Equal(t, llm.TokenUsage{InputTokens: 120, OutputTokens: 40, TotalTokens: 160}, resp.Usage)

	require.Len(t, fake.lastInput, 1)
	assert.Equal(t, schema.User, fake.lastInput[0].Role)
	assert.Equal(t, "ループとは？", fake.lastInput[0].Content)
}

func TestCompleter_Complete_NoUsageMetadata(t *testing.T) {
	fake := &fakeChatModel{
		response: &schema.Message{Role: schema.Assistant, Content: "answer"},
	}
	completer, err := New(fake)
	require.NoError(t, err)

	resp, err := completer.Complete(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, llm.TokenUsage{}, resp.Usage)
}

func TestCompleter_Complete_ModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("quota exceeded")}
	completer, err := New(fake)
	require.NoError(t, err)

	_, err = completer.Complete(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
