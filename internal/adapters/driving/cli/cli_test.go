package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// --- Fake services ---

type fakeIngestService struct {
	result domain.IngestResult
	paths  []string
}

func (f *fakeIngestService) ProcessFiles(_ context.Context, paths []string) domain.IngestResult {
	f.paths = paths
	return f.result
}

type fakeSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastTopK  int
}

func (f *fakeSearchService) Search(_ context.Context, query string, topK int) ([]domain.SearchResult, error) {
	f.lastQuery = query
	f.lastTopK = topK
	if f.err != nil {
		return []domain.SearchResult{}, f.err
	}
	return f.results, nil
}

type fakeDocumentService struct {
	docs      []string
	deleteErr error
	deleted   []string
	preview   *domain.CleaningPreview
}

func (f *fakeDocumentService) List(_ context.Context) ([]string, error) {
	return f.docs, nil
}

func (f *fakeDocumentService) Delete(_ context.Context, filename string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeDocumentService) Preview(_ string, _ int) (*domain.CleaningPreview, error) {
	if f.preview == nil {
		return nil, errors.New("no preview")
	}
	return f.preview, nil
}

// execute runs the root command with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
