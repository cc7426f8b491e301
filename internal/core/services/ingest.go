package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvec-cli/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestService = (*IngestionService)(nil)

// IngestionService walks files through the ingestion pipeline:
// validate, clean, chunk, embed, index. Files are processed
// sequentially and independently; one bad file never takes down the
// batch.
type IngestionService struct {
	validator domain.FileValidator
	cleaner   driven.ContentCleaner
	pipeline  driven.PostProcessorPipeline
	embedding driven.EmbeddingService
	index     driven.VectorIndex
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(
	validator domain.FileValidator,
	cleaner driven.ContentCleaner,
	pipeline driven.PostProcessorPipeline,
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
) *IngestionService {
	return &IngestionService{
		validator: validator,
		cleaner:   cleaner,
		pipeline:  pipeline,
		embedding: embedding,
		index:     index,
	}
}

// ProcessFiles ingests each file independently and accumulates a batch
// result. The batch succeeds when at least one file was indexed.
// Earlier successes are never rolled back by a later failure.
func (s *IngestionService) ProcessFiles(ctx context.Context, paths []string) domain.IngestResult {
	result := domain.IngestResult{
		BatchID: uuid.New().String(),
	}

	logger.Section("Ingestion")
	logger.Info("Batch %s: %d file(s)", result.BatchID, len(paths))

	// Check backend reachability once before committing to the batch.
	if len(paths) > 0 {
		if err := s.embedding.Ping(ctx); err != nil {
			reason := fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err).Error()
			logger.Warn("Batch %s: embedding backend unreachable: %v", result.BatchID, err)
			for _, path := range paths {
				result.Failures = append(result.Failures, domain.FileFailure{
					Filename: filepath.Base(path),
					Reason:   reason,
				})
			}
			result.Status = domain.IngestStatusError
			return result
		}
	}

	for _, path := range paths {
		filename := filepath.Base(path)

		chunkCount, err := s.processFile(ctx, path, filename)
		if err != nil {
			logger.Warn("Batch %s: %s failed: %v", result.BatchID, filename, err)
			result.Failures = append(result.Failures, domain.FileFailure{
				Filename: filename,
				Reason:   err.Error(),
			})
			continue
		}

		logger.Info("Batch %s: %s indexed (%d chunks)", result.BatchID, filename, chunkCount)
		result.Successes = append(result.Successes, filename)
		result.SuccessCount++
		result.TotalChunks += chunkCount
	}

	result.Status = domain.IngestStatusError
	if result.SuccessCount > 0 {
		result.Status = domain.IngestStatusSuccess
	}

	logger.Info("Batch %s: %d succeeded, %d failed, %d chunks",
		result.BatchID, result.SuccessCount, len(result.Failures), result.TotalChunks)

	return result
}

// processFile runs one file through the full pipeline and returns the
// number of chunks indexed.
func (s *IngestionService) processFile(ctx context.Context, path, filename string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	if ok, reason := s.validator.Validate(filename, info.Size()); !ok {
		return 0, fmt.Errorf("%s", reason)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	cleaned := s.cleaner.Clean(string(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: nothing left after cleaning", domain.ErrEmptyContent)
	}

	doc := &domain.Document{
		Filename: filename,
		Content:  cleaned,
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("chunking: %w", err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: no chunks produced", domain.ErrEmptyContent)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedding.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}

	if _, err := s.index.Add(ctx, chunks, vectors); err != nil {
		return 0, fmt.Errorf("indexing: %w", err)
	}

	return len(chunks), nil
}
