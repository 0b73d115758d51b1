// Package einomodel adapts a CloudWeGo Eino chat model to the llm.Completer
// contract, so any Eino-supported provider (OpenAI, Ollama, Gemini, Claude)
// can serve as the completion backend.
package einomodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/manabi-ai/semrag/llm"
)

// Completer wraps an Eino chat model.
type Completer struct {
	model model.BaseChatModel
}

// New creates a Completer over the given chat model.
func New(m model.BaseChatModel) (*Completer, error) {
	if m == nil {
		return nil, errors.New("einomodel: chat model is required")
	}
	return &Completer{model: m}, nil
}

// Complete sends the prompt as a single user message and maps the response
// content and usage metadata back to the llm contract.
func (c *Completer) Complete(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Response, error) {
	req := llm.NewRequest(prompt, opts...)

	var modelOpts []model.Option
	if req.Temperature != nil {
		modelOpts = append(modelOpts, model.WithTemperature(float32(*req.Temperature)))
	}
	if req.MaxTokens != nil {
		modelOpts = append(modelOpts, model.WithMaxTokens(*req.MaxTokens))
	}
	if len(req.Stop) > 0 {
		modelOpts = append(modelOpts, model.WithStop(req.Stop))
	}

	msg, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(req.Prompt)}, modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("einomodel: generation failed: %w", err)
	}

	resp := &llm.Response{Content: msg.Content}
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		resp.Usage = llm.TokenUsage{
			InputTokens:  msg.ResponseMeta.Usage.PromptTokens,
			OutputTokens: msg.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:  msg.ResponseMeta.Usage.TotalTokens,
		}
	}
	return resp, nil
}
