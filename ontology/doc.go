// Package ontology provides the typed concept graph that backs semantic
// query expansion and reranking.
//
// The graph stores learning concepts and typed, weighted relations between
// them. It is populated once at startup from a Definition (usually loaded
// from YAML) and treated as read-mostly afterwards: all traversal operations
// take a read lock, so any number of in-flight queries can share one Graph.
//
// # Concepts and Relations
//
// Create concepts with the fluent builder:
//
//	concept := ontology.NewConcept("loops").
//	    WithLabel("ループ").
//	    WithLevel(ontology.LevelBeginner).
//	    WithPrerequisites("variables", "conditionals").
//	    WithProperty("category", "control-flow")
//
//	graph := ontology.NewGraph()
//	graph.AddConcept(concept)
//	graph.AddRelation("loops", "conditionals", "related", 1.0)
//
// Relations are keyed by the (from, type, to) triple: adding the same triple
// twice overwrites the strength instead of creating a duplicate edge.
// Endpoints are not checked against the concept table; a relation that names
// an unknown concept is stored as-is and simply never produces traversal
// results for the missing side.
//
// # Traversal
//
// FindRelated performs a breadth-first walk over the relation set treated as
// an undirected graph, which favors recall during query expansion:
//
//	related := graph.FindRelated("loops", 1)
//
// PrerequisiteChain follows only the Prerequisites lists stored on concepts
// and returns the transitive closure. The walk is cycle-safe: a malformed
// definition in which two concepts require each other yields the mutual
// closure rather than unbounded recursion.
//
// Traversal can be narrowed with options. WithRelationTypes restricts the
// walk to named relation types, and WithRelationFilter accepts an arbitrary
// predicate, including one compiled from a CEL expression:
//
//	filter, err := ontology.NewCELFilter(`type != "cosmetic" && strength >= 0.5`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	related := graph.FindRelated("loops", 2, ontology.WithRelationFilter(filter.Keep))
//
// # Loading a Definition
//
// Definitions map concept IDs to their properties plus an ordered relation
// list:
//
//	def, err := ontology.LoadDefinitionFile("ontology.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph := ontology.NewGraph()
//	def.Apply(graph)
//
// Concept load order is independent; relations may reference concepts that
// appear later in the file or not at all.
package ontology
