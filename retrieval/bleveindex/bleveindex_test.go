package bleveindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manabi-ai/semrag/retrieval"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestIndex_IndexAndSearch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.Index(ctx,
		retrieval.Document{
			ID:       "doc-1",
			Text:     "Variables store data values for later use in a program",
			Metadata: retrieval.Metadata{Title: "Variables", Subject: "programming", Level: "beginner"},
		},
		retrieval.Document{
			ID:       "doc-2",
			Text:     "Loops repeat a block of code while a condition holds",
			Metadata: retrieval.Metadata{Title: "Loops", Subject: "programming", Level: "beginner"},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.DocCount())

	hits, err := idx.Search(ctx, "variables data values", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	assert.Equal(t, "doc-1", hits[0].Document.ID)
	assert.Equal(t, 1.0, hits[0].Similarity)
	for _, hit := range hits {
		assert.GreaterOrEqual(t, hit.Similarity, 0.0)
		assert.LessOrEqual(t, hit.Similarity, 1.0)
	}
}

func TestIndex_Search_DescendingOrder(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx,
		retrieval.Document{ID: "a", Text: "recursion recursion recursion explained"},
		retrieval.Document{ID: "b", Text: "a note that mentions recursion once"},
		retrieval.Document{ID: "c", Text: "completely unrelated cooking recipe"},
	))

	hits, err := idx.Search(ctx, "recursion", 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(hits), 2)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
}

func TestIndex_Search_NoResults(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, retrieval.Document{ID: "a", Text: "loops and conditionals"}))

	hits, err := idx.Search(ctx, "zzzzqqqq", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Search_EmptyQueryAndZeroTopK(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, "loops", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Index_AssignsIDs(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, retrieval.Document{Text: "functions take arguments"}))

	hits, err := idx.Search(ctx, "functions arguments", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.NotEmpty(t, hits[0].Document.ID)
}

func TestIndex_Search_RespectsTopK(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, idx.Index(ctx, retrieval.Document{ID: id, Text: "arrays and data structures " + id}))
	}

	hits, err := idx.Search(ctx, "arrays", 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(hits), 3)
}
