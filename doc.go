// Package semrag provides ontology-aware retrieval-augmented answering for
// learning content.
//
// The core augments free-text retrieval with a typed knowledge graph of
// learning concepts: a raw question is expanded with related and
// prerequisite concept vocabulary before retrieval, and retrieved passages
// are reranked by blending the backend's similarity scores with
// graph-derived semantic relevance.
//
// # Architecture
//
// The module is organized leaf-first:
//
//   - ontology: the concept graph (typed, weighted relations; prerequisite
//     chains; bounded-depth traversal)
//   - extract: keyword-based concept extraction from free text
//   - expand: query expansion using the extractor and the graph
//   - rerank: similarity/semantic blended scoring and reordering
//   - retrieval: the ranked-retrieval backend contract, with an in-process
//     Bleve implementation (retrieval/bleveindex) and a Redis caching
//     decorator (retrieval/rediscache)
//   - llm: the text-completion backend contract, with an Eino adapter
//     (llm/einomodel)
//
// The root package ties these together in System, the top-level
// orchestrator.
//
// # Usage
//
//	sys, err := semrag.New(
//	    semrag.WithCompleter(completer),
//	    semrag.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	def, err := ontology.LoadDefinitionFile("ontology.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sys.Initialize(ctx, documents, def); err != nil {
//	    log.Fatal(err)
//	}
//
//	answer, err := sys.Answer(ctx, "for文について教えて")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(answer.Text)
//
// # Error Handling
//
// Orchestrator operations return sentinel errors usable with errors.Is():
// ErrNotInitialized when Answer precedes Initialize, and ErrCompletionFailed
// when the completion backend fails. Retrieval failures never surface as
// errors; they degrade to a plain-chat answer with no sources.
//
// # Concurrency
//
// A System is safe for concurrent Answer calls once Initialize has
// returned; the concept graph is read-only during query processing. To hot
// reload the ontology, call Initialize again: the new graph is published
// atomically, never mutated under concurrent readers.
package semrag
