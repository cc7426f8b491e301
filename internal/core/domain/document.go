package domain

import "fmt"

// Document represents a normalised document ready for chunking.
// Documents are identified by filename; re-ingesting the same
// filename replaces the prior entries in the index.
type Document struct {
	// Filename is the unique key for the document across the index.
	Filename string

	// Content is the full text content after markdown cleaning.
	// This is the complete document text before chunking.
	Content string
}

// Chunk represents a searchable unit within a document.
// Documents are split into overlapping chunks for granular search results.
type Chunk struct {
	// Text is the text content of this chunk.
	Text string

	// SourceFilename is the document this chunk was cut from.
	SourceFilename string

	// Start is the character offset into the normalised text where
	// this chunk begins.
	Start int

	// End is the character offset into the normalised text where
	// this chunk ends (exclusive).
	End int

	// Index is the zero-based ordinal position within the document,
	// assigned in split order.
	Index int
}

// EntryID returns the stable index id for this chunk.
// Re-adding a chunk with the same id overwrites the prior entry.
func (c Chunk) EntryID() string {
	return fmt.Sprintf("%s_%d", c.SourceFilename, c.Index)
}

// Metadata returns the positional metadata stored alongside the
// chunk's vector in the index.
func (c Chunk) Metadata() ChunkMetadata {
	return ChunkMetadata{
		SourceFilename: c.SourceFilename,
		ChunkIndex:     c.Index,
		Start:          c.Start,
		End:            c.End,
	}
}

// ChunkMetadata is the positional metadata attached to an index entry.
// It is everything needed to trace a search hit back to its source.
type ChunkMetadata struct {
	SourceFilename string `json:"source_filename"`
	ChunkIndex     int    `json:"chunk_index"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
}
