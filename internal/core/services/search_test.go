package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec-cli/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

func TestSearch_ReturnsRankedResults(t *testing.T) {
	index := memory.New()
	ctx := context.Background()

	// The mock embedder maps text length to direction, so "abc" and the
	// query "xyz" embed identically while "longer text" points elsewhere.
	_, err := index.Add(ctx,
		[]domain.Chunk{
			{Text: "abc", SourceFilename: "a.md", Index: 0, End: 3},
			{Text: "longer text", SourceFilename: "b.md", Index: 0, End: 11},
		},
		[][]float32{{3, 1}, {11, 1}},
	)
	require.NoError(t, err)

	svc := NewSearchService(&mockEmbeddingService{}, index)

	results, err := svc.Search(ctx, "xyz", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a.md_0", results[0].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewSearchService(&mockEmbeddingService{}, memory.New())

	results, err := svc.Search(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, results)
	assert.NotNil(t, results, "failure must return an empty list, not nil")
}

func TestSearch_DefaultTopK(t *testing.T) {
	embed := &mockEmbeddingService{}
	svc := NewSearchService(embed, memory.New())

	results, err := svc.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	require.Len(t, embed.calls, 1)
	assert.Equal(t, []string{"query"}, embed.calls[0])
}

func TestSearch_EmbeddingFailure(t *testing.T) {
	svc := NewSearchService(&mockEmbeddingService{embedErr: errf("backend down")}, memory.New())

	results, err := svc.Search(context.Background(), "query", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingFailed))
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_IndexFailure(t *testing.T) {
	svc := NewSearchService(&mockEmbeddingService{}, &mockVectorIndex{searchErr: errf("index gone")})

	results, err := svc.Search(context.Background(), "query", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index gone")
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
