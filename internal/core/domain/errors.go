package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyContent indicates a document produced zero chunks,
	// either because it was empty or cleaning removed everything.
	ErrEmptyContent = errors.New("empty content")

	// ErrEmbeddingFailed indicates an upstream embedding call failure.
	// No partial vector set is ever returned alongside this error.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexMismatch indicates a chunk/vector count mismatch on add.
	ErrIndexMismatch = errors.New("chunk and vector counts differ")

	// ErrDimensionMismatch indicates a vector whose dimension differs
	// from the dimension the index was established with.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable indicates the vector index is not configured.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
