package driving

import (
	"context"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// IngestService drives documents through the validate → clean → chunk
// → embed → index pipeline.
type IngestService interface {
	// ProcessFiles ingests each file independently and accumulates a
	// batch result. A failing file is recorded and skipped; it never
	// aborts its siblings, and earlier successes are not rolled back.
	ProcessFiles(ctx context.Context, paths []string) domain.IngestResult
}
