package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvec-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages documents already in the index and previews
// the cleaning step for documents that are not.
type DocumentService struct {
	index   driven.VectorIndex
	cleaner driven.ContentCleaner
}

// NewDocumentService creates a new document service.
func NewDocumentService(index driven.VectorIndex, cleaner driven.ContentCleaner) *DocumentService {
	return &DocumentService{
		index:   index,
		cleaner: cleaner,
	}
}

// List returns the sorted filenames present in the index.
func (s *DocumentService) List(ctx context.Context) ([]string, error) {
	docs, err := s.index.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// Delete removes every indexed chunk of the named document. Deleting
// an unknown filename succeeds.
func (s *DocumentService) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename must not be empty", domain.ErrInvalidInput)
	}

	if _, err := s.index.DeleteDocument(ctx, filename); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	logger.Info("Deleted %s from index", filename)
	return nil
}

// Preview cleans the file and reports before/after previews with
// stats, without touching the index.
func (s *DocumentService) Preview(path string, maxLength int) (*domain.CleaningPreview, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	preview := s.cleaner.Preview(string(raw), maxLength)
	return &preview, nil
}
