// Package bleveindex provides an in-process retrieval.Retriever backed by a
// Bleve full-text index.
//
// It is a keyword-similarity stand-in for an embedding-based backend: scores
// come from Bleve's relevance ranking and are max-normalized into [0, 1] so
// they satisfy the retrieval contract. Swapping in a vector backend is a
// matter of providing another Retriever implementation.
package bleveindex

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/google/uuid"

	"github.com/manabi-ai/semrag/retrieval"
)

// indexDoc is the shape stored in the Bleve index.
type indexDoc struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
}

// Index is an in-memory Bleve-backed retriever.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
	docs  map[string]retrieval.Document
}

// New creates an empty in-memory index.
//
// The standard analyzer (lowercase + tokenize, no stemming) is used for text
// and title so that query terms match indexed words exactly across mixed
// Japanese/English content.
func New() (*Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Index{
		index: idx,
		docs:  make(map[string]retrieval.Document),
	}, nil
}

// Index adds documents to the index. Documents without an ID are assigned
// one. Re-indexing an existing ID replaces the stored document.
func (i *Index) Index(ctx context.Context, docs ...retrieval.Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		entry := indexDoc{
			Text:    doc.Text,
			Title:   doc.Metadata.Title,
			Subject: doc.Metadata.Subject,
			Level:   doc.Metadata.Level,
		}
		if err := i.index.Index(doc.ID, entry); err != nil {
			return fmt.Errorf("failed to index document %s: %w", doc.ID, err)
		}
		i.docs[doc.ID] = doc
	}
	return nil
}

// Search runs a match query and returns up to topK hits ordered by
// descending similarity. Scores are normalized by the top hit's score so the
// best match carries similarity 1.0. Zero results is a normal outcome.
func (i *Index) Search(ctx context.Context, query string, topK int) ([]retrieval.Hit, error) {
	if topK <= 0 || query == "" {
		return nil, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = topK

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}

	maxScore := res.Hits[0].Score
	hits := make([]retrieval.Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, ok := i.docs[hit.ID]
		if !ok {
			continue
		}
		similarity := 0.0
		if maxScore > 0 {
			similarity = hit.Score / maxScore
		}
		hits = append(hits, retrieval.Hit{Document: doc, Similarity: similarity})
	}
	return hits, nil
}

// DocCount returns the number of indexed documents.
func (i *Index) DocCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}

// Close releases the underlying Bleve index.
func (i *Index) Close() error {
	return i.index.Close()
}
