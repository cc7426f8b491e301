// Package chunker provides a fixed-size overlapping text chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits document content into fixed-size overlapping chunks,
// tracking the character offsets of each chunk in the source text.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// Invalid parameters are a configuration error raised here, never
// deferred to the first split.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrInvalidInput, p.chunkSize)
	}
	if p.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d",
			domain.ErrInvalidInput, p.overlap)
	}
	if p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: overlap (%d) must be smaller than chunk size (%d)",
			domain.ErrInvalidInput, p.overlap, p.chunkSize)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks carrying the source
// filename. Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	return p.SplitFile(doc.Filename, doc.Content), nil
}

// Split cuts text into windows of at most chunkSize characters, each
// overlapping the previous by the configured overlap. Offsets count
// characters, not bytes, so multibyte text is never cut mid-rune.
// Every character of the input belongs to at least one chunk, chunk
// starts are strictly increasing, and the loop terminates for any
// size/overlap combination the constructor accepts.
func (p *Processor) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	textLen := len(runes)
	chunks := make([]domain.Chunk, 0, textLen/(p.chunkSize-p.overlap)+1)

	start := 0
	for start < textLen {
		end := start + p.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.Chunk{
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
			Index: len(chunks),
		})

		// The final window reaches the end of the text; stepping back
		// by the overlap would only emit chunks already covered.
		if end == textLen {
			break
		}

		// Stall guard: if the overlap step would not advance past the
		// current start, fall back to an overlap-free step.
		next := end - p.overlap
		if next <= 0 || next <= start {
			start = end
		} else {
			start = next
		}
	}

	return chunks
}

// SplitFile splits the content and stamps each chunk with the source
// filename. Chunk indexes are contiguous 0..n-1 in split order.
func (p *Processor) SplitFile(filename, content string) []domain.Chunk {
	chunks := p.Split(content)
	for i := range chunks {
		chunks[i].SourceFilename = filename
	}
	return chunks
}
