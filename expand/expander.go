// Package expand enriches raw queries with related and prerequisite concept
// vocabulary before retrieval.
//
// The premise: injecting ontology vocabulary into the query improves
// similarity recall for passages that use that vocabulary even when the
// user's phrasing didn't.
package expand

import (
	"strings"

	"github.com/manabi-ai/semrag/extract"
	"github.com/manabi-ai/semrag/ontology"
)

// DefaultRelatedDepth is the relation traversal depth used during expansion.
// Expansion deliberately stays shallow; deep traversal trades precision for
// noise.
const DefaultRelatedDepth = 1

// Expansion is the result of expanding one query. It is a per-request value
// owned by the caller and never cached by the expander.
type Expansion struct {
	// OriginalQuery is the raw query text.
	OriginalQuery string `json:"original_query"`

	// QueryConcepts are the concept IDs extracted from the raw query.
	QueryConcepts []string `json:"query_concepts"`

	// ExpandedConcepts is QueryConcepts plus related and prerequisite
	// concepts, deduplicated in insertion order. Always a superset of
	// QueryConcepts.
	ExpandedConcepts []string `json:"expanded_concepts"`

	// ExpandedQuery is the original query with the labels of every
	// expanded concept appended, space-joined.
	ExpandedQuery string `json:"expanded_query"`
}

// Option configures an Expander.
type Option func(*Expander)

// WithRelatedDepth sets the relation traversal depth used when collecting
// related concepts. The default of 1 keeps expansion focused on direct
// neighbors.
func WithRelatedDepth(depth int) Option {
	return func(e *Expander) {
		e.relatedDepth = depth
	}
}

// WithTraversalOptions forwards traversal options (such as relation filters)
// to the graph walk used for related-concept collection.
func WithTraversalOptions(opts ...ontology.TraversalOption) Option {
	return func(e *Expander) {
		e.traversal = opts
	}
}

// Expander turns a raw query into an Expansion using a concept extractor and
// the ontology graph.
type Expander struct {
	graph        *ontology.Graph
	extractor    *extract.Extractor
	relatedDepth int
	traversal    []ontology.TraversalOption
}

// New creates an Expander over the given graph and extractor.
func New(graph *ontology.Graph, extractor *extract.Extractor, opts ...Option) *Expander {
	e := &Expander{
		graph:        graph,
		extractor:    extractor,
		relatedDepth: DefaultRelatedDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand extracts concepts from the query, unions in each concept's related
// concepts and prerequisite chain, and builds the expanded query text.
//
// Concept IDs without a graph record contribute nothing to the expanded
// text; absence is skipped, never an error. A query matching no concept
// yields an Expansion whose ExpandedQuery equals the original query.
func (e *Expander) Expand(query string) *Expansion {
	queryConcepts := e.extractor.Extract(query)

	seen := make(map[string]struct{}, len(queryConcepts))
	expanded := make([]string, 0, len(queryConcepts))
	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		expanded = append(expanded, id)
	}

	for _, id := range queryConcepts {
		add(id)
	}
	for _, id := range queryConcepts {
		for _, related := range e.graph.FindRelated(id, e.relatedDepth, e.traversal...) {
			add(related)
		}
		for _, prereq := range e.graph.PrerequisiteChain(id) {
			add(prereq)
		}
	}

	return &Expansion{
		OriginalQuery:    query,
		QueryConcepts:    queryConcepts,
		ExpandedConcepts: expanded,
		ExpandedQuery:    e.buildExpandedQuery(query, expanded),
	}
}

// buildExpandedQuery resolves each expanded concept to its label and appends
// the space-joined labels to the original query.
func (e *Expander) buildExpandedQuery(query string, conceptIDs []string) string {
	var labels []string
	for _, id := range conceptIDs {
		if c, ok := e.graph.Concept(id); ok && c.Label != "" {
			labels = append(labels, c.Label)
		}
	}
	if len(labels) == 0 {
		return query
	}
	return query + " " + strings.Join(labels, " ")
}
