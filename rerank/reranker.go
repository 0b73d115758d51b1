// Package rerank reorders retrieval candidates by blending the backend's
// vector similarity with graph-derived semantic relevance.
//
// Similarity measures how closely a passage's wording matches the query;
// semantic relevance measures how closely its concepts relate to the query's
// concepts in the ontology. The blend lets graph relevance break ties and
// correct for vocabulary mismatch while similarity stays dominant.
package rerank

import (
	"sort"

	"github.com/manabi-ai/semrag/extract"
	"github.com/manabi-ai/semrag/ontology"
	"github.com/manabi-ai/semrag/retrieval"
)

// Default policy constants. They mirror the conventional 60/40 split between
// vector similarity and graph structure; tune via options rather than
// editing call sites.
const (
	DefaultSimilarityWeight = 0.6
	DefaultSemanticWeight   = 0.4
	DefaultRelatedDepth     = 1

	directMatchScore  = 1.0
	relatedMatchScore = 0.5
)

// Candidate is one retrieval result entering the reranker.
type Candidate struct {
	// Document is the retrieved document.
	Document retrieval.Document `json:"document"`

	// Similarity is the retrieval backend's score in [0, 1].
	Similarity float64 `json:"similarity"`
}

// Ranked is a candidate with reranking scores attached. The underlying
// document is carried through untouched.
type Ranked struct {
	Candidate

	// SemanticScore is the graph-derived relevance in [0, 1].
	SemanticScore float64 `json:"semantic_score"`

	// CombinedScore is the weighted blend used for the final ordering.
	CombinedScore float64 `json:"combined_score"`

	// DocConcepts are the concept IDs extracted from the document text.
	DocConcepts []string `json:"doc_concepts"`
}

// Option configures a Reranker.
type Option func(*Reranker)

// WithWeights sets the similarity/semantic blend. Weights outside [0, 1] or
// not summing to 1 are accepted; callers own the policy.
func WithWeights(similarity, semantic float64) Option {
	return func(r *Reranker) {
		r.similarityWeight = similarity
		r.semanticWeight = semantic
	}
}

// WithRelatedDepth sets the traversal depth used when checking whether a
// document concept is related to a query concept.
func WithRelatedDepth(depth int) Option {
	return func(r *Reranker) {
		r.relatedDepth = depth
	}
}

// Reranker scores and reorders candidates.
type Reranker struct {
	graph            *ontology.Graph
	extractor        *extract.Extractor
	similarityWeight float64
	semanticWeight   float64
	relatedDepth     int
}

// New creates a Reranker over the given graph and extractor.
func New(graph *ontology.Graph, extractor *extract.Extractor, opts ...Option) *Reranker {
	r := &Reranker{
		graph:            graph,
		extractor:        extractor,
		similarityWeight: DefaultSimilarityWeight,
		semanticWeight:   DefaultSemanticWeight,
		relatedDepth:     DefaultRelatedDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank returns the candidates reordered by descending combined score.
//
// The output is a permutation of the input: no candidate is created or
// dropped. Sorting is stable, so candidates with equal combined scores keep
// their original retrieval order. An empty candidate list returns an empty
// result, and empty queryConcepts degrades to pure similarity ordering.
func (r *Reranker) Rerank(candidates []Candidate, queryConcepts []string) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, cand := range candidates {
		docConcepts := r.extractor.Extract(cand.Document.Text)
		semantic := r.semanticRelevance(queryConcepts, docConcepts)
		ranked[i] = Ranked{
			Candidate:     cand,
			SemanticScore: semantic,
			CombinedScore: cand.Similarity*r.similarityWeight + semantic*r.semanticWeight,
			DocConcepts:   docConcepts,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})
	return ranked
}

// semanticRelevance scores how strongly the document's concepts relate to
// the query's concepts.
//
// Each (queryConcept, docConcept) pair contributes 1.0 for an identical
// match and 0.5 when the document concept lies within relatedDepth hops of
// the query concept. The sum is normalized by the query concept count and
// clamped to 1.0, so a passage dense in related concepts is rewarded but
// never exceeds a perfect score.
func (r *Reranker) semanticRelevance(queryConcepts, docConcepts []string) float64 {
	if len(queryConcepts) == 0 || len(docConcepts) == 0 {
		return 0.0
	}

	score := 0.0
	for _, qc := range queryConcepts {
		var related map[string]struct{}
		for _, dc := range docConcepts {
			if qc == dc {
				score += directMatchScore
				continue
			}
			if related == nil {
				related = make(map[string]struct{})
				for _, id := range r.graph.FindRelated(qc, r.relatedDepth) {
					related[id] = struct{}{}
				}
			}
			if _, ok := related[dc]; ok {
				score += relatedMatchScore
			}
		}
	}

	norm := float64(len(queryConcepts))
	if norm < 1 {
		norm = 1
	}
	score /= norm
	if score > 1.0 {
		score = 1.0
	}
	return score
}
