package ontology

import (
	"errors"
	"time"
)

// Difficulty levels commonly used by learning ontologies. Level is a free
// string; these constants cover the conventional three-tier scheme.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Concept represents a single unit of domain knowledge in the ontology.
type Concept struct {
	// ID is the unique concept identifier (e.g., "loops"). Required.
	ID string `json:"id"`

	// Label is the display text for the concept, used when building
	// expanded query strings.
	Label string `json:"label,omitempty"`

	// Level is the difficulty level (e.g., "beginner").
	Level string `json:"level,omitempty"`

	// Prerequisites lists concept IDs this concept depends on, in order.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// Properties contains arbitrary definition-specific key-value data.
	Properties map[string]any `json:"properties,omitempty"`

	// AddedAt is the timestamp when the concept was inserted into a graph.
	// Stamped by Graph.AddConcept.
	AddedAt time.Time `json:"added_at"`
}

// NewConcept creates a new Concept with the given ID.
func NewConcept(id string) *Concept {
	return &Concept{
		ID:         id,
		Properties: make(map[string]any),
	}
}

// WithLabel sets the display label and returns the concept for chaining.
func (c *Concept) WithLabel(label string) *Concept {
	c.Label = label
	return c
}

// WithLevel sets the difficulty level and returns the concept for chaining.
func (c *Concept) WithLevel(level string) *Concept {
	c.Level = level
	return c
}

// WithPrerequisites sets the ordered prerequisite list and returns the
// concept for chaining. This replaces any existing prerequisites.
func (c *Concept) WithPrerequisites(ids ...string) *Concept {
	c.Prerequisites = ids
	return c
}

// WithProperty sets a single property and returns the concept for chaining.
// If the Properties map is nil, it will be initialized.
func (c *Concept) WithProperty(key string, value any) *Concept {
	if c.Properties == nil {
		c.Properties = make(map[string]any)
	}
	c.Properties[key] = value
	return c
}

// WithProperties replaces the entire Properties map and returns the concept
// for chaining.
func (c *Concept) WithProperties(props map[string]any) *Concept {
	c.Properties = props
	return c
}

// Validate checks that the concept has all required fields set.
// Returns an error if ID is empty.
func (c *Concept) Validate() error {
	if c.ID == "" {
		return errors.New("concept ID is required")
	}
	return nil
}

// clone returns a deep copy so that stored concepts never leak mutable
// references out of the graph.
func (c *Concept) clone() *Concept {
	cp := *c
	if c.Prerequisites != nil {
		cp.Prerequisites = make([]string, len(c.Prerequisites))
		copy(cp.Prerequisites, c.Prerequisites)
	}
	if c.Properties != nil {
		cp.Properties = make(map[string]any, len(c.Properties))
		for k, v := range c.Properties {
			cp.Properties[k] = v
		}
	}
	return &cp
}
