// Package ai provides factory functions for creating embedding and
// vector index adapters from domain settings.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	ollamaembed "github.com/custodia-labs/docvec-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docvec-cli/internal/adapters/driven/embedding/openai"
	sqliteindex "github.com/custodia-labs/docvec-cli/internal/adapters/driven/index/sqlite"
	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// collectionBase is the prefix for index collection names. The full
// name is collectionBase + "_" + backend identity, so each embedding
// backend writes into its own collection.
const collectionBase = "documents"

// DefaultAPIKeyEnv is the environment variable consulted for the
// OpenAI API key when none is configured.
const DefaultAPIKeyEnv = "OPENAI_API_KEY"

// CreateEmbeddingService creates the appropriate embedding service
// based on settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return createOllamaEmbedding(settings)

	case domain.ProviderOpenAI:
		return createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before committing to ingestion.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateVectorIndex opens the persistent vector index for the
// configured embedding backend. The collection name embeds the backend
// identity so vectors from different backends never mix.
func CreateVectorIndex(dataDir string, settings domain.EmbeddingSettings) (driven.VectorIndex, error) {
	idx, err := sqliteindex.NewIndex(sqliteindex.Config{
		DataDir:    dataDir,
		Collection: CollectionName(settings),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return idx, nil
}

// CollectionName returns the collection used for the given backend.
func CollectionName(settings domain.EmbeddingSettings) string {
	return collectionBase + "_" + settings.BackendID()
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	keyEnv := settings.APIKeyEnv
	if keyEnv == "" {
		keyEnv = DefaultAPIKeyEnv
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key not set (export %s)", keyEnv)
	}

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:    apiKey,
		BaseURL:   settings.BaseURL,
		Model:     settings.Model,
		BatchSize: settings.BatchSize,
	})
}
