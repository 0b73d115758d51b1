package semrag

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/manabi-ai/semrag/expand"
	"github.com/manabi-ai/semrag/extract"
	"github.com/manabi-ai/semrag/llm"
	"github.com/manabi-ai/semrag/ontology"
	"github.com/manabi-ai/semrag/rerank"
	"github.com/manabi-ai/semrag/retrieval"
	"github.com/manabi-ai/semrag/retrieval/bleveindex"
)

// Token tracker slots used by the orchestrator.
const (
	slotAnswer   = "answer"
	slotFallback = "fallback"
)

// Answer is the result bundle for one question.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"text"`

	// OriginalQuery is the question as asked.
	OriginalQuery string `json:"original_query"`

	// Expansion describes how the query was expanded before retrieval.
	Expansion *expand.Expansion `json:"expansion"`

	// Sources are the top reranked candidates that informed the answer.
	// Empty when retrieval produced no candidates and the system fell
	// back to plain chat.
	Sources []rerank.Ranked `json:"sources"`

	// ConceptsUsed lists every concept involved in retrieval.
	ConceptsUsed []string `json:"concepts_used"`

	// Usage is the completion backend's token usage for this answer,
	// passed through unchanged.
	Usage llm.TokenUsage `json:"usage"`
}

// System is the top-level orchestrator: it expands a question, retrieves
// candidates, reranks them against the concept graph, and delegates answer
// synthesis to the completion backend.
//
// A System must be initialized with documents and an ontology definition
// before answering. Once initialized it is safe for concurrent Answer
// calls; calling Initialize again rebuilds and atomically republishes the
// graph.
type System struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	retriever retrieval.Retriever
	completer llm.Completer
	extractor *extract.Extractor
	tracker   llm.TokenTracker

	retrieveCount int
	topSources    int
	expandOpts    []expand.Option
	rerankOpts    []rerank.Option

	mu          sync.RWMutex
	graph       *ontology.Graph
	expander    *expand.Expander
	reranker    *rerank.Reranker
	initialized bool
}

// New creates a System with the provided options.
func New(opts ...Option) (*System, error) {
	cfg := &config{
		retrieveCount: DefaultRetrieveCount,
		topSources:    DefaultTopSources,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.tracer == nil {
		cfg.tracer = noop.NewTracerProvider().Tracer("semrag")
	}
	if cfg.keywords == nil {
		cfg.keywords = extract.DefaultKeywords()
	}
	if cfg.retriever == nil {
		idx, err := bleveindex.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create default retriever: %w", err)
		}
		cfg.retriever = idx
	}
	if cfg.retrieveCount <= 0 {
		cfg.retrieveCount = DefaultRetrieveCount
	}
	if cfg.topSources <= 0 {
		cfg.topSources = DefaultTopSources
	}

	return &System{
		logger:        cfg.logger,
		tracer:        cfg.tracer,
		retriever:     cfg.retriever,
		completer:     cfg.completer,
		extractor:     extract.New(cfg.keywords),
		tracker:       llm.NewTokenTracker(),
		retrieveCount: cfg.retrieveCount,
		topSources:    cfg.topSources,
		expandOpts:    cfg.expandOpts,
		rerankOpts:    cfg.rerankOpts,
	}, nil
}

// Initialize bulk-loads the ontology definition into a fresh concept graph
// and feeds the documents into the retrieval index, then publishes the new
// graph. All loading completes before any concurrent Answer traversal can
// observe the graph.
func (s *System) Initialize(ctx context.Context, docs []retrieval.Document, def *ontology.Definition) error {
	graph := ontology.NewGraph()
	if def != nil {
		def.Apply(graph)
	}
	s.logger.Info("ontology loaded",
		"concepts", graph.ConceptCount(),
		"relations", graph.RelationCount())

	for _, doc := range docs {
		if err := s.retriever.Index(ctx, doc); err != nil {
			return fmt.Errorf("failed to index document %q: %w", doc.ID, err)
		}
	}
	s.logger.Info("documents indexed", "count", len(docs))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = graph
	s.expander = expand.New(graph, s.extractor, s.expandOpts...)
	s.reranker = rerank.New(graph, s.extractor, s.rerankOpts...)
	s.initialized = true
	return nil
}

// Initialized reports whether Initialize has completed.
func (s *System) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Graph returns the currently published concept graph, or nil before
// initialization.
func (s *System) Graph() *ontology.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Usage returns the aggregate completion token usage across all answers.
func (s *System) Usage() llm.TokenUsage {
	return s.tracker.Total()
}

// Answer runs the full semantic retrieval pipeline for one question.
//
// The question is expanded with ontology vocabulary, the expanded query is
// sent to the retrieval backend, candidates are reranked by blended
// similarity and graph relevance, and the top sources are assembled into a
// prompt for the completion backend.
//
// A retrieval failure or empty result degrades gracefully: the original
// question is forwarded directly to the completion backend and the answer
// carries no sources. A completion failure is the only upstream error that
// propagates, wrapped with ErrCompletionFailed.
func (s *System) Answer(ctx context.Context, question string, opts ...AnswerOption) (*Answer, error) {
	s.mu.RLock()
	expander, reranker := s.expander, s.reranker
	initialized := s.initialized
	s.mu.RUnlock()

	if !initialized {
		return nil, ErrNotInitialized
	}
	if s.completer == nil {
		return nil, ErrNoCompleter
	}

	cfg := &answerConfig{retrieveCount: s.retrieveCount}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.retrieveCount <= 0 {
		cfg.retrieveCount = DefaultRetrieveCount
	}

	ctx, span := s.tracer.Start(ctx, "semrag.answer",
		trace.WithAttributes(attribute.Int("retrieve_count", cfg.retrieveCount)))
	defer span.End()

	expansion := s.expandQuery(ctx, expander, question)

	hits := s.search(ctx, expansion.ExpandedQuery, cfg.retrieveCount)
	if len(hits) == 0 {
		s.logger.Warn("no candidates retrieved, falling back to plain chat",
			"question", question)
		return s.fallback(ctx, question, expansion)
	}

	sources := s.rerankHits(ctx, reranker, hits, expansion.QueryConcepts)
	if len(sources) > s.topSources {
		sources = sources[:s.topSources]
	}

	prompt := buildPrompt(question, buildContext(sources, expansion))

	resp, err := s.complete(ctx, prompt, slotAnswer)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:          resp.Content,
		OriginalQuery: question,
		Expansion:     expansion,
		Sources:       sources,
		ConceptsUsed:  expansion.ExpandedConcepts,
		Usage:         resp.Usage,
	}, nil
}

// expandQuery runs query expansion under a span.
func (s *System) expandQuery(ctx context.Context, expander *expand.Expander, question string) *expand.Expansion {
	_, span := s.tracer.Start(ctx, "semrag.expand")
	defer span.End()

	expansion := expander.Expand(question)
	span.SetAttributes(
		attribute.Int("concepts.query", len(expansion.QueryConcepts)),
		attribute.Int("concepts.expanded", len(expansion.ExpandedConcepts)),
	)
	s.logger.Debug("query expanded",
		"query_concepts", expansion.QueryConcepts,
		"expanded_concepts", expansion.ExpandedConcepts)
	return expansion
}

// search calls the retrieval backend. Failures and timeouts are absorbed
// into the zero-candidate degradation path rather than surfaced.
func (s *System) search(ctx context.Context, query string, topK int) []retrieval.Hit {
	ctx, span := s.tracer.Start(ctx, "semrag.search")
	defer span.End()

	hits, err := s.retriever.Search(ctx, query, topK)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("retrieval failed, treating as zero candidates", "error", err)
		return nil
	}
	span.SetAttributes(attribute.Int("hits", len(hits)))
	return hits
}

// rerankHits reorders the candidates under a span.
func (s *System) rerankHits(ctx context.Context, reranker *rerank.Reranker, hits []retrieval.Hit, queryConcepts []string) []rerank.Ranked {
	_, span := s.tracer.Start(ctx, "semrag.rerank",
		trace.WithAttributes(attribute.Int("candidates", len(hits))))
	defer span.End()

	candidates := make([]rerank.Candidate, len(hits))
	for i, hit := range hits {
		candidates[i] = rerank.Candidate{Document: hit.Document, Similarity: hit.Similarity}
	}
	return reranker.Rerank(candidates, queryConcepts)
}

// fallback answers with plain chat when retrieval produced nothing.
func (s *System) fallback(ctx context.Context, question string, expansion *expand.Expansion) (*Answer, error) {
	resp, err := s.complete(ctx, question, slotFallback)
	if err != nil {
		return nil, err
	}
	return &Answer{
		Text:          resp.Content,
		OriginalQuery: question,
		Expansion:     expansion,
		Sources:       []rerank.Ranked{},
		ConceptsUsed:  expansion.ExpandedConcepts,
		Usage:         resp.Usage,
	}, nil
}

// complete calls the completion backend under a span and records usage.
func (s *System) complete(ctx context.Context, prompt, slot string) (*llm.Response, error) {
	ctx, span := s.tracer.Start(ctx, "semrag.complete")
	defer span.End()

	resp, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	span.SetAttributes(attribute.Int("tokens.total", resp.Usage.TotalTokens))
	s.tracker.Add(slot, resp.Usage)
	return resp, nil
}
