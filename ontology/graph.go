package ontology

import (
	"sync"
	"time"
)

// DefaultMaxDepth is the traversal depth used by FindRelated when callers
// have no stronger opinion.
const DefaultMaxDepth = 2

// TraversalOption configures a FindRelated walk.
type TraversalOption func(*traversalConfig)

// RelationFilter decides whether a relation may be crossed during traversal.
type RelationFilter func(Relation) bool

type traversalConfig struct {
	filter RelationFilter
}

// WithRelationFilter restricts the walk to relations the filter accepts.
// The default walk is type-agnostic and crosses every relation.
func WithRelationFilter(f RelationFilter) TraversalOption {
	return func(c *traversalConfig) {
		c.filter = f
	}
}

// WithRelationTypes restricts the walk to the named relation types.
func WithRelationTypes(types ...string) TraversalOption {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(c *traversalConfig) {
		c.filter = func(r Relation) bool {
			_, ok := allowed[r.Type]
			return ok
		}
	}
}

// Graph stores concepts and the relations between them.
//
// The graph is designed for bulk load at startup followed by concurrent
// read-only query traffic; all methods are safe for concurrent use. To hot
// reload an ontology, build a new Graph and swap the reference rather than
// mutating a graph that concurrent readers hold.
type Graph struct {
	mu        sync.RWMutex
	concepts  map[string]*Concept
	relations map[string]*Relation
	// outgoing and incoming adjacency, kept in insertion order so that
	// traversal results are deterministic for a given load sequence.
	outgoing map[string][]*Relation
	incoming map[string][]*Relation
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		concepts:  make(map[string]*Concept),
		relations: make(map[string]*Relation),
		outgoing:  make(map[string][]*Relation),
		incoming:  make(map[string][]*Relation),
	}
}

// AddConcept inserts or replaces the concept record, stamping AddedAt.
// Re-adding an existing ID is last-write-wins, which makes bulk reload
// idempotent. Concepts with an empty ID are ignored.
func (g *Graph) AddConcept(c *Concept) {
	if c == nil || c.ID == "" {
		return
	}
	stored := c.clone()
	stored.AddedAt = time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.concepts[stored.ID] = stored
}

// AddRelation inserts or overwrites the relation keyed by (from, type, to).
// Endpoints are not required to name existing concepts; dangling references
// are stored and simply yield empty traversal results.
func (g *Graph) AddRelation(from, to, relType string, strength float64) {
	rel := &Relation{From: from, To: to, Type: relType, Strength: strength}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := rel.key()
	if existing, ok := g.relations[key]; ok {
		existing.Strength = strength
		return
	}
	g.relations[key] = rel
	g.outgoing[from] = append(g.outgoing[from], rel)
	g.incoming[to] = append(g.incoming[to], rel)
}

// Concept returns the stored concept for id. The second return value is
// false when no concept with that ID exists; absence is a normal outcome,
// not an error. The returned concept is a copy and may be mutated freely.
func (g *Graph) Concept(id string) (*Concept, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.concepts[id]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// ConceptCount returns the number of stored concepts.
func (g *Graph) ConceptCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.concepts)
}

// RelationCount returns the number of stored relations.
func (g *Graph) RelationCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.relations)
}

// FindRelated returns the concept IDs reachable from id within maxDepth hops.
//
// The walk is breadth-first over the relation set treated as an undirected
// graph: a relation (A, type, B) allows movement both A to B and B to A,
// regardless of type. Query expansion wants breadth rather than semantic
// precision; precision is recovered later during reranking. The starting
// concept is never part of the result, and maxDepth of zero or less yields
// an empty result. Results appear in the order the walk first reaches them.
func (g *Graph) FindRelated(id string, maxDepth int, opts ...TraversalOption) []string {
	var cfg traversalConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	type frontier struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{id: {}}
	var related []string
	queue := []frontier{{id: id, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}
		for _, next := range g.neighbors(cur.id, cfg.filter) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			related = append(related, next)
			queue = append(queue, frontier{id: next, depth: cur.depth + 1})
		}
	}
	return related
}

// neighbors returns the IDs adjacent to id across both relation directions,
// in relation insertion order. Caller must hold at least a read lock.
func (g *Graph) neighbors(id string, filter RelationFilter) []string {
	var out []string
	for _, rel := range g.outgoing[id] {
		if filter == nil || filter(*rel) {
			out = append(out, rel.To)
		}
	}
	for _, rel := range g.incoming[id] {
		if filter == nil || filter(*rel) {
			out = append(out, rel.From)
		}
	}
	return out
}

// PrerequisiteChain returns every concept transitively required by id,
// following only the Prerequisites lists stored on concepts (the general
// relation set is not consulted). The result is deduplicated and ordered by
// first visit.
//
// The walk is iterative with an explicit visited set, so a definition whose
// prerequisite lists form a cycle produces the partial closure instead of
// recursing forever. The starting concept is excluded unless a cycle leads
// back to it.
func (g *Graph) PrerequisiteChain(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var chain []string
	seen := make(map[string]struct{})
	stack := []string{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c, ok := g.concepts[cur]
		if !ok {
			continue
		}
		var added []string
		for _, prereq := range c.Prerequisites {
			if _, dup := seen[prereq]; dup {
				continue
			}
			seen[prereq] = struct{}{}
			chain = append(chain, prereq)
			added = append(added, prereq)
		}
		// Push in reverse so the first prerequisite's own chain is
		// expanded before its siblings'.
		for i := len(added) - 1; i >= 0; i-- {
			stack = append(stack, added[i])
		}
	}
	return chain
}
