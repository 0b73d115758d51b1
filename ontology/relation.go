package ontology

import "fmt"

// DefaultStrength is the relation strength used when none is given.
const DefaultStrength = 1.0

// Relation represents a typed, weighted directed edge between two concepts.
// Relations are keyed by the (From, Type, To) triple; storing the same triple
// twice overwrites the strength rather than creating a duplicate edge.
type Relation struct {
	// From is the source concept ID.
	From string `json:"from"`

	// To is the target concept ID.
	To string `json:"to"`

	// Type describes the relation (e.g., "related", "part_of").
	Type string `json:"type"`

	// Strength is the edge weight in [0, 1]. Defaults to 1.0.
	Strength float64 `json:"strength"`
}

// NewRelation creates a new Relation with the default strength.
func NewRelation(from, to, relType string) *Relation {
	return &Relation{
		From:     from,
		To:       to,
		Type:     relType,
		Strength: DefaultStrength,
	}
}

// WithStrength sets the edge weight and returns the relation for chaining.
func (r *Relation) WithStrength(s float64) *Relation {
	r.Strength = s
	return r
}

// Validate checks that the relation has all required fields populated and
// that the strength is within [0, 1].
func (r *Relation) Validate() error {
	if r.From == "" {
		return fmt.Errorf("relation From cannot be empty")
	}
	if r.To == "" {
		return fmt.Errorf("relation To cannot be empty")
	}
	if r.Type == "" {
		return fmt.Errorf("relation Type cannot be empty")
	}
	if r.Strength < 0.0 || r.Strength > 1.0 {
		return fmt.Errorf("relation Strength must be between 0.0 and 1.0, got %f", r.Strength)
	}
	return nil
}

// key returns the dedup key identifying this relation's triple.
func (r *Relation) key() string {
	return r.From + "\x00" + r.Type + "\x00" + r.To
}
