// Package retrieval defines the contract the core requires from a
// ranked-retrieval backend.
//
// The core treats retrieval as an opaque service: documents go in, hits with
// similarity scores come out. How similarity is computed (embeddings, BM25,
// a remote vector store) is a backend concern; implementations only need to
// satisfy the Retriever interface. The bleveindex subpackage provides an
// in-process implementation and rediscache a caching decorator.
package retrieval

import "context"

// Metadata carries the descriptive fields attached to a document.
type Metadata struct {
	// Title is the document's display title.
	Title string `json:"title,omitempty"`

	// Subject is the topic area the document belongs to.
	Subject string `json:"subject,omitempty"`

	// Level is the difficulty level of the material.
	Level string `json:"level,omitempty"`
}

// Document is a unit of indexable content. The core never mutates documents;
// it only attaches derived scores when producing a reranked view.
type Document struct {
	// ID uniquely identifies the document. Backends may assign one at
	// indexing time when empty.
	ID string `json:"id,omitempty"`

	// Text is the raw document content.
	Text string `json:"text"`

	// Metadata holds the document's descriptive fields.
	Metadata Metadata `json:"metadata"`
}

// Hit is a single retrieval result.
type Hit struct {
	// Document is the matched document.
	Document Document `json:"document"`

	// Similarity is the backend's relevance score in [0, 1].
	Similarity float64 `json:"similarity"`
}

// Retriever is the ranked-retrieval backend contract.
type Retriever interface {
	// Index adds documents to the backend's index.
	Index(ctx context.Context, docs ...Document) error

	// Search returns up to topK hits for the query, ordered by descending
	// similarity. Fewer than topK results, including zero, is a normal
	// outcome rather than an error.
	Search(ctx context.Context, query string, topK int) ([]Hit, error)
}
