package domain

// SearchResult represents a single similarity hit from the vector index.
type SearchResult struct {
	// ID is the index entry id (source filename + chunk index).
	ID string `json:"id"`

	// Text is the chunk text that matched.
	Text string `json:"text"`

	// Metadata traces the chunk back to its source document.
	Metadata ChunkMetadata `json:"metadata"`

	// Score is the similarity score in [0,1], where 1.0 denotes
	// maximal similarity between query and stored vector.
	Score float64 `json:"score"`
}
