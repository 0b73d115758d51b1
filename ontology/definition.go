package ontology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the serialized form of an ontology, typically loaded from a
// YAML file at startup:
//
//	concepts:
//	  loops:
//	    label: ループ
//	    level: beginner
//	    prerequisites: [variables]
//	relations:
//	  - from: loops
//	    to: conditionals
//	    type: related
//	    strength: 0.8
//
// Concept load order is independent; relations are applied in file order and
// may reference concept IDs that have no concept entry.
type Definition struct {
	Concepts  map[string]ConceptDefinition `yaml:"concepts"`
	Relations []RelationDefinition         `yaml:"relations"`
}

// ConceptDefinition holds the per-concept fields of a Definition. Fields
// outside the core schema are collected into Extra and stored as concept
// properties.
type ConceptDefinition struct {
	Label         string         `yaml:"label"`
	Level         string         `yaml:"level,omitempty"`
	Prerequisites []string       `yaml:"prerequisites,omitempty"`
	Extra         map[string]any `yaml:",inline"`
}

// RelationDefinition holds one relation record of a Definition. A nil
// Strength means the default of 1.0.
type RelationDefinition struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Type     string   `yaml:"type"`
	Strength *float64 `yaml:"strength,omitempty"`
}

// LoadDefinition parses a Definition from YAML bytes.
func LoadDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse ontology definition: %w", err)
	}
	return &def, nil
}

// LoadDefinitionFile reads and parses a Definition from the YAML file at path.
func LoadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology definition: %w", err)
	}
	return LoadDefinition(data)
}

// Apply bulk-loads the definition into the graph: every concept first, then
// every relation in order. Applying the same definition twice is idempotent
// apart from refreshed AddedAt timestamps.
func (d *Definition) Apply(g *Graph) {
	for id, cd := range d.Concepts {
		concept := NewConcept(id).
			WithLabel(cd.Label).
			WithLevel(cd.Level).
			WithPrerequisites(cd.Prerequisites...)
		for k, v := range cd.Extra {
			concept.WithProperty(k, v)
		}
		g.AddConcept(concept)
	}
	for _, rd := range d.Relations {
		strength := DefaultStrength
		if rd.Strength != nil {
			strength = *rd.Strength
		}
		g.AddRelation(rd.From, rd.To, rd.Type, strength)
	}
}
