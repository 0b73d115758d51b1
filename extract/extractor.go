// Package extract maps free text to concept identifiers via keyword matching.
//
// An Extractor owns an explicit keyword table rather than process-wide state,
// so multiple differently-configured extractors can coexist (one per tenant,
// one per test). Matching is case-insensitive substring matching with a
// first-match short-circuit per concept: how many trigger phrases matched is
// never scored, only whether at least one did.
package extract

import (
	"strings"
	"sync"
)

// Keywords maps each concept ID to its ordered list of trigger phrases.
// Phrases may mix scripts and languages; matching lowercases both sides.
type Keywords struct {
	order   []string
	phrases map[string][]string
}

// NewKeywords creates an empty keyword table.
func NewKeywords() *Keywords {
	return &Keywords{
		phrases: make(map[string][]string),
	}
}

// Add appends trigger phrases for a concept, creating the entry if needed.
// Returns the table for chaining.
func (k *Keywords) Add(conceptID string, phrases ...string) *Keywords {
	if _, ok := k.phrases[conceptID]; !ok {
		k.order = append(k.order, conceptID)
	}
	k.phrases[conceptID] = append(k.phrases[conceptID], phrases...)
	return k
}

// Concepts returns the concept IDs in insertion order.
func (k *Keywords) Concepts() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}

// Phrases returns the trigger phrases registered for a concept.
func (k *Keywords) Phrases(conceptID string) []string {
	src := k.phrases[conceptID]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (k *Keywords) clone() *Keywords {
	cp := NewKeywords()
	for _, id := range k.order {
		cp.Add(id, k.phrases[id]...)
	}
	return cp
}

// Extractor extracts concept IDs from free text.
//
// Extraction is safe for concurrent use. AddKeywords mutates the extractor's
// table and affects all subsequent Extract calls; treat it as configuration
// performed at setup time, not a per-query operation.
type Extractor struct {
	mu       sync.RWMutex
	keywords *Keywords
}

// New creates an Extractor with the given keyword table. A nil table yields
// an extractor that matches nothing until AddKeywords is called. The table
// is copied; later mutation of the argument does not affect the extractor.
func New(keywords *Keywords) *Extractor {
	if keywords == nil {
		keywords = NewKeywords()
	}
	return &Extractor{keywords: keywords.clone()}
}

// Extract returns the IDs of every concept with at least one trigger phrase
// contained in text. The result has no duplicates and follows the keyword
// table's insertion order, so it is deterministic for a given input. Empty
// or unmatched text yields an empty result; Extract never fails.
func (e *Extractor) Extract(text string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lower := strings.ToLower(text)
	var concepts []string
	for _, conceptID := range e.keywords.order {
		for _, phrase := range e.keywords.phrases[conceptID] {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				concepts = append(concepts, conceptID)
				break
			}
		}
	}
	return concepts
}

// AddKeywords appends trigger phrases for a concept, creating a new table
// entry when the concept is unknown. The change is visible to all later
// Extract calls on this extractor.
func (e *Extractor) AddKeywords(conceptID string, phrases ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keywords.Add(conceptID, phrases...)
}
