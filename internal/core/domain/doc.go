// Package domain defines the core business entities for docvec.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A normalised document identified by its filename
//   - Chunk: A contiguous window of a document's normalised text
//   - SearchResult: A ranked similarity hit from the vector index
//   - IngestResult: The outcome of a batch ingestion
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
