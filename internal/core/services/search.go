package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvec-cli/internal/logger"
)

// DefaultTopK is the result limit when the caller does not set one.
const DefaultTopK = 5

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers similarity queries by embedding the query and
// ranking stored chunks against it.
type SearchService struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
}

// NewSearchService creates a new search service.
func NewSearchService(embedding driven.EmbeddingService, index driven.VectorIndex) *SearchService {
	return &SearchService{
		embedding: embedding,
		index:     index,
	}
}

// Search embeds the query and returns up to topK ranked results. On
// failure the result list is empty, never partial.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	logger.Section("Search")

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger.Debug("Query: %q, topK: %d", query, topK)

	vectors, err := s.embedding.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.SearchResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(vectors) != 1 {
		return []domain.SearchResult{}, fmt.Errorf("%w: got %d query vectors",
			domain.ErrEmbeddingFailed, len(vectors))
	}
	logger.Debug("Query embedding: %d dimensions", len(vectors[0]))

	results, err := s.index.Search(ctx, vectors[0], topK)
	if err != nil {
		logger.Warn("Index search failed: %v", err)
		return []domain.SearchResult{}, fmt.Errorf("search index: %w", err)
	}

	logger.Info("Results: %d", len(results))
	return results, nil
}
