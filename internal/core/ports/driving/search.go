package driving

import (
	"context"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// SearchService answers similarity queries over the indexed documents.
type SearchService interface {
	// Search embeds the query and returns up to topK ranked results.
	// On failure it returns an empty result list alongside the
	// diagnostic error, never a partial result set.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}

// DocumentService manages indexed documents.
type DocumentService interface {
	// List returns the sorted filenames present in the index.
	List(ctx context.Context) ([]string, error)

	// Delete removes every indexed chunk of the named document.
	// Deleting an unknown filename succeeds (idempotent).
	Delete(ctx context.Context, filename string) error

	// Preview shows the cleaning effect on a file without ingesting it.
	Preview(path string, maxLength int) (*domain.CleaningPreview, error)
}
