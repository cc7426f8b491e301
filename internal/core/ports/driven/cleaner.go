package driven

import "github.com/custodia-labs/docvec-cli/internal/core/domain"

// ContentCleaner strips structural markup from raw document text.
// Implementations are pure functions over their configuration.
type ContentCleaner interface {
	// Clean returns the text with markup stripped according to the
	// configured strategy. All human-readable content is preserved in
	// original reading order.
	Clean(content string) string

	// Stats reports length and line counts plus the reduction ratio
	// for an original/cleaned pair.
	Stats(original, cleaned string) domain.CleaningStats

	// Preview cleans the content and returns truncated previews with
	// stats, for inspection without committing to ingestion.
	Preview(content string, maxLength int) domain.CleaningPreview
}
