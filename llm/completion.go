// Package llm defines the contract the core requires from a text-completion
// backend.
//
// The completion service is an opaque collaborator: prompt in, text and
// usage metadata out. Retry policy, model hosting, and provider selection
// all belong to the implementation, not to this package. The einomodel
// subpackage adapts any CloudWeGo Eino chat model to the Completer
// interface.
package llm

import "context"

// Request represents a completion request.
type Request struct {
	// Prompt is the full prompt text.
	Prompt string

	// Temperature controls randomness in the output (0.0 to 2.0).
	Temperature *float64

	// MaxTokens limits the maximum number of tokens to generate.
	MaxTokens *int

	// Stop contains sequences that will stop generation when encountered.
	Stop []string
}

// Response represents a completion result.
type Response struct {
	// Content is the generated text.
	Content string

	// Usage contains token usage statistics.
	Usage TokenUsage
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// InputTokens is the number of tokens in the prompt.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of tokens generated.
	OutputTokens int `json:"output_tokens"`

	// TotalTokens is the sum of input and output tokens.
	TotalTokens int `json:"total_tokens"`
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// Option is a functional option for configuring a Request.
type Option func(*Request)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(r *Request) {
		r.Temperature = &t
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(r *Request) {
		r.MaxTokens = &n
	}
}

// WithStopSequences sets sequences that will stop generation.
func WithStopSequences(stops ...string) Option {
	return func(r *Request) {
		r.Stop = stops
	}
}

// NewRequest creates a Request with the given prompt and options applied.
func NewRequest(prompt string, opts ...Option) *Request {
	req := &Request{Prompt: prompt}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// Completer is the text-completion backend contract. Implementations may
// fail (network, quota); callers surface such failures rather than retrying
// here.
type Completer interface {
	// Complete generates a completion for the prompt.
	Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}
