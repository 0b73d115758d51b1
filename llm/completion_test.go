package llm

import (
	"testing"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("explain loops",
		WithTemperature(0.7),
		WithMaxTokens(500),
		WithStopSequences("END"),
	)

	if req.Prompt != "explain loops" {
		t.Errorf("expected Prompt to be 'explain loops', got %q", req.Prompt)
	}
	if req.Temperature == nil || *req.Temperature != 0.7 {
		t.Errorf("expected Temperature 0.7, got %v", req.Temperature)
	}
	if req.MaxTokens == nil || *req.MaxTokens != 500 {
		t.Errorf("expected MaxTokens 500, got %v", req.MaxTokens)
	}
	if len(req.Stop) != 1 || req.Stop[0] != "END" {
		t.Errorf("expected Stop ['END'], got %v", req.Stop)
	}
}

func TestNewRequest_Defaults(t *testing.T) {
	req := NewRequest("prompt")

	if req.Temperature != nil {
		t.Error("expected Temperature to be unset")
	}
	if req.MaxTokens != nil {
		t.Error("expected MaxTokens to be unset")
	}
	if req.Stop != nil {
		t.Error("expected Stop to be unset")
	}
}

func TestTokenUsage_Add(t *testing.T) {
	a := TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}
	b := TokenUsage{InputTokens: 1, OutputTokens: 2, TotalTokens: 3}

	sum := a.Add(b)

	if sum.InputTokens != 11 || sum.OutputTokens != 22 || sum.TotalTokens != 33 {
		t.Errorf("unexpected sum: %+v", sum)
	}
}
