// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Converts chunk texts into vectors
//   - VectorIndex: Stores vectors and answers similarity queries
//   - ContentCleaner: Strips markup from raw document text
//   - PostProcessor / PostProcessorPipeline: Produces chunks from documents
//   - ConfigStore: Application configuration
//
// An EmbeddingService and its VectorIndex are paired 1:1; an index
// never holds vectors from two different backends.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
