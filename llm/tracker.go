package llm

import "sync"

// TokenTracker tracks token usage across named slots (e.g., "answer",
// "fallback").
type TokenTracker interface {
	// Add records token usage for a specific slot.
	Add(slot string, usage TokenUsage)

	// Total returns the aggregate token usage across all slots.
	Total() TokenUsage

	// BySlot returns the token usage for a specific slot.
	BySlot(slot string) TokenUsage

	// Reset clears all tracked token usage.
	Reset()

	// Slots returns a list of all tracked slot names.
	Slots() []string
}

// DefaultTokenTracker is a thread-safe implementation of TokenTracker.
type DefaultTokenTracker struct {
	mu    sync.RWMutex
	slots map[string]TokenUsage
	total TokenUsage
}

// NewTokenTracker creates a new DefaultTokenTracker.
func NewTokenTracker() *DefaultTokenTracker {
	return &DefaultTokenTracker{
		slots: make(map[string]TokenUsage),
	}
}

// Add records token usage for a specific slot.
func (t *DefaultTokenTracker) Add(slot string, usage TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slots[slot] = t.slots[slot].Add(usage)
	t.total = t.total.Add(usage)
}

// Total returns the aggregate token usage across all slots.
func (t *DefaultTokenTracker) Total() TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// BySlot returns the token usage for a specific slot.
// Returns a zero TokenUsage if the slot has not been used.
func (t *DefaultTokenTracker) BySlot(slot string) TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slots[slot]
}

// Reset clears all tracked token usage.
func (t *DefaultTokenTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slots = make(map[string]TokenUsage)
	t.total = TokenUsage{}
}

// Slots returns a list of all tracked slot names.
func (t *DefaultTokenTracker) Slots() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	slots := make([]string, 0, len(t.slots))
	for slot := range t.slots {
		slots = append(slots, slot)
	}
	return slots
}
