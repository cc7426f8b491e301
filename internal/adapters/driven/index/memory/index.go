// Package memory provides an in-process vector index.
//
// It is the default index for tests and for workflows that do not need
// persistence. Entries live in a map keyed by entry id, with insertion
// order tracked so equal-score search results come back in a stable
// order.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	id       string
	text     string
	metadata domain.ChunkMetadata
	vector   []float32
	seq      uint64
}

// Index is an in-memory vector index using cosine similarity.
type Index struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64

	// dim is pinned by the first vector added; zero means unset.
	dim int
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{
		entries: make(map[string]*entry),
	}
}

// Add upserts one entry per chunk/vector pair. Re-adding an existing
// id replaces the stored text, metadata and vector.
func (idx *Index) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) ([]string, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrIndexMismatch, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Validate all dimensions before mutating anything.
	dim := idx.dim
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty vector at position %d", domain.ErrDimensionMismatch, i)
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, fmt.Errorf("%w: vector at position %d has dimension %d, index has %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}
	idx.dim = dim

	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		id := chunk.EntryID()
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])

		if existing, ok := idx.entries[id]; ok {
			existing.text = chunk.Text
			existing.metadata = chunk.Metadata()
			existing.vector = vec
		} else {
			idx.nextSeq++
			idx.entries[id] = &entry{
				id:       id,
				text:     chunk.Text,
				metadata: chunk.Metadata(),
				vector:   vec,
				seq:      idx.nextSeq,
			}
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Search returns up to topK entries ranked by descending cosine
// similarity score. Ties break on insertion order.
func (idx *Index) Search(ctx context.Context, query []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", domain.ErrInvalidInput, topK)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return []domain.SearchResult{}, nil
	}
	if idx.dim != 0 && len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), idx.dim)
	}

	type scored struct {
		e     *entry
		score float64
	}
	candidates := make([]scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		candidates = append(candidates, scored{e: e, score: cosineScore(query, e.vector)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].e.seq < candidates[j].e.seq
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}

	results := make([]domain.SearchResult, 0, topK)
	for _, c := range candidates[:topK] {
		results = append(results, domain.SearchResult{
			ID:       c.e.id,
			Text:     c.e.text,
			Metadata: c.e.metadata,
			Score:    c.score,
		})
	}

	return results, nil
}

// ListDocuments returns the sorted, de-duplicated source filenames.
func (idx *Index) ListDocuments(ctx context.Context) ([]string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, e := range idx.entries {
		seen[e.metadata.SourceFilename] = struct{}{}
	}

	docs := make([]string, 0, len(seen))
	for name := range seen {
		docs = append(docs, name)
	}
	sort.Strings(docs)

	return docs, nil
}

// DeleteDocument removes every entry for the given source filename.
// Deleting an absent filename succeeds without change.
func (idx *Index) DeleteDocument(ctx context.Context, filename string) (bool, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for id, e := range idx.entries {
		if e.metadata.SourceFilename == filename {
			delete(idx.entries, id)
		}
	}

	return true, nil
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// cosineScore maps cosine distance into a similarity score in [0,1].
// Distance d is in [0,2]; score is (2-d)/2, clamped against float
// drift. A zero vector scores 0.
func cosineScore(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	distance := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	score := (2 - distance) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
