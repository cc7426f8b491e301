package driven

import (
	"context"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// VectorIndex stores chunk vectors keyed by a stable id and answers
// nearest-neighbour similarity queries. One index instance per
// embedding backend identity, never shared across backends.
type VectorIndex interface {
	// Add upserts one entry per chunk/vector pair, keyed by the
	// chunk's EntryID. Re-adding an existing id fully replaces the
	// prior entry. A chunk/vector count mismatch is an error; so is a
	// vector whose dimension differs from the index's established
	// dimension. Returns the affected ids.
	Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) ([]string, error)

	// Search returns up to topK entries ranked by descending
	// similarity score in [0,1]. Ties follow the underlying engine's
	// return order.
	Search(ctx context.Context, query []float32, topK int) ([]domain.SearchResult, error)

	// ListDocuments returns the sorted, de-duplicated source filenames
	// present across all entries.
	ListDocuments(ctx context.Context) ([]string, error)

	// DeleteDocument removes every entry whose source filename
	// matches. Deleting an absent filename is a no-op that still
	// reports success.
	DeleteDocument(ctx context.Context, filename string) (bool, error)

	// Close releases resources.
	Close() error
}
