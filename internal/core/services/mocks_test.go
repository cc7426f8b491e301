package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Each text embeds to a vector whose first component is the text
// length, so distinct texts get distinct directions.
type mockEmbeddingService struct {
	embedErr error
	pingErr  error
	calls    [][]string
}

func (m *mockEmbeddingService) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = []float32{float32(len(text)), 1}
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 2 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return m.pingErr }

func (m *mockEmbeddingService) Close() error { return nil }

// mockCleaner implements driven.ContentCleaner for testing.
// It trims whitespace and drops lines starting with '#'.
type mockCleaner struct{}

func (m *mockCleaner) Clean(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if strings.TrimSpace(line) != "" {
			kept = append(kept, strings.TrimSpace(line))
		}
	}
	return strings.Join(kept, " ")
}

func (m *mockCleaner) Stats(original, cleaned string) domain.CleaningStats {
	ratio := 0.0
	if len(original) > 0 {
		ratio = 1 - float64(len(cleaned))/float64(len(original))
	}
	return domain.CleaningStats{
		OriginalLength: len(original),
		CleanedLength:  len(cleaned),
		ReductionRatio: ratio,
	}
}

func (m *mockCleaner) Preview(content string, maxLength int) domain.CleaningPreview {
	cleaned := m.Clean(content)
	return domain.CleaningPreview{
		OriginalPreview: content,
		CleanedPreview:  cleaned,
		Stats:           m.Stats(content, cleaned),
	}
}

// mockPipeline implements driven.PostProcessorPipeline for testing.
// It emits one chunk for the whole document unless configured to fail
// or to return nothing.
type mockPipeline struct {
	processErr error
	noChunks   bool
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.processErr != nil {
		return nil, m.processErr
	}
	if m.noChunks {
		return nil, nil
	}
	return []domain.Chunk{{
		Text:           doc.Content,
		SourceFilename: doc.Filename,
		Start:          0,
		End:            len(doc.Content),
		Index:          0,
	}}, nil
}

// mockVectorIndex implements driven.VectorIndex for testing error paths.
type mockVectorIndex struct {
	addErr    error
	searchErr error
	listErr   error
	deleteErr error
	deleted   []string
	results   []domain.SearchResult
}

func (m *mockVectorIndex) Add(_ context.Context, chunks []domain.Chunk, _ [][]float32) ([]string, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.EntryID()
	}
	return ids, nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, topK int) ([]domain.SearchResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK > len(m.results) {
		topK = len(m.results)
	}
	return m.results[:topK], nil
}

func (m *mockVectorIndex) ListDocuments(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []string{"alpha.md", "beta.md"}, nil
}

func (m *mockVectorIndex) DeleteDocument(_ context.Context, filename string) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	m.deleted = append(m.deleted, filename)
	return true, nil
}

func (m *mockVectorIndex) Close() error { return nil }

// errf builds a reusable sentinel-free error for mock failures.
func errf(msg string) error { return fmt.Errorf("%s", msg) }
