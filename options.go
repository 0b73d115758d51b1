package semrag

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/manabi-ai/semrag/expand"
	"github.com/manabi-ai/semrag/extract"
	"github.com/manabi-ai/semrag/llm"
	"github.com/manabi-ai/semrag/ontology"
	"github.com/manabi-ai/semrag/rerank"
	"github.com/manabi-ai/semrag/retrieval"
)

// Defaults for the orchestrator's policy knobs.
const (
	// DefaultRetrieveCount is the number of candidates requested from the
	// retrieval backend per question.
	DefaultRetrieveCount = 5

	// DefaultTopSources is the number of reranked candidates placed into
	// the completion context. Kept small for context-window economy.
	DefaultTopSources = 3
)

// Option configures a System.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	retriever     retrieval.Retriever
	completer     llm.Completer
	keywords      *extract.Keywords
	retrieveCount int
	topSources    int
	expandOpts    []expand.Option
	rerankOpts    []rerank.Option
}

// WithLogger sets a custom logger. If not provided, a JSON logger writing
// to stderr is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the answer pipeline. Each
// phase (expand, search, rerank, complete) is recorded as a span. Without a
// tracer, tracing is a no-op.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithRetriever sets the retrieval backend. Defaults to an in-memory
// Bleve index.
func WithRetriever(r retrieval.Retriever) Option {
	return func(c *config) {
		c.retriever = r
	}
}

// WithCompleter sets the completion backend. Required before Answer can be
// called.
func WithCompleter(completer llm.Completer) Option {
	return func(c *config) {
		c.completer = completer
	}
}

// WithKeywords sets the concept extraction keyword table. Defaults to the
// built-in learning-programming table.
func WithKeywords(kw *extract.Keywords) Option {
	return func(c *config) {
		c.keywords = kw
	}
}

// WithRetrieveCount sets how many candidates are requested from the
// retrieval backend per question.
func WithRetrieveCount(n int) Option {
	return func(c *config) {
		c.retrieveCount = n
	}
}

// WithTopSources sets how many reranked candidates enter the completion
// context.
func WithTopSources(n int) Option {
	return func(c *config) {
		c.topSources = n
	}
}

// WithExpansionDepth sets the relation traversal depth used during query
// expansion.
func WithExpansionDepth(depth int) Option {
	return func(c *config) {
		c.expandOpts = append(c.expandOpts, expand.WithRelatedDepth(depth))
	}
}

// WithRelationFilter restricts graph traversal during expansion to
// relations the filter accepts.
func WithRelationFilter(f ontology.RelationFilter) Option {
	return func(c *config) {
		c.expandOpts = append(c.expandOpts,
			expand.WithTraversalOptions(ontology.WithRelationFilter(f)))
	}
}

// WithRerankWeights sets the similarity/semantic blend used for reranking.
func WithRerankWeights(similarity, semantic float64) Option {
	return func(c *config) {
		c.rerankOpts = append(c.rerankOpts, rerank.WithWeights(similarity, semantic))
	}
}

// AnswerOption configures a single Answer call.
type AnswerOption func(*answerConfig)

type answerConfig struct {
	retrieveCount int
}

// WithAnswerRetrieveCount overrides the retrieval candidate count for one
// Answer call.
func WithAnswerRetrieveCount(n int) AnswerOption {
	return func(c *answerConfig) {
		c.retrieveCount = n
	}
}
