// Command docvec ingests markdown documents into a local vector index
// and searches them semantically.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docvec-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/docvec-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvec-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/services"
	"github.com/custodia-labs/docvec-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/docvec-cli/internal/postprocessors"
)

// Set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()

	store, err := configfile.NewConfigStore(os.Getenv("DOCVEC_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings, err := configfile.LoadSettings(store)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cleaner := markdown.New(markdown.Config{
		Strategy:                  settings.Cleaning.Strategy,
		PreserveCodeBlocks:        settings.Cleaning.PreserveCodeBlocks,
		PreserveHeadingsAsContext: settings.Cleaning.PreserveHeadingsAsContext,
	})

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	chunkProcessor, err := registry.Build("chunker", map[string]any{
		"chunk_size": settings.ChunkSize,
		"overlap":    settings.ChunkOverlap,
	})
	if err != nil {
		return fmt.Errorf("building chunker: %w", err)
	}
	pipeline := postprocessors.NewPipeline(chunkProcessor)

	embedding, err := ai.CreateEmbeddingService(settings.Embedding)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	defer embedding.Close()

	index, err := ai.CreateVectorIndex(os.Getenv("DOCVEC_DATA_DIR"), settings.Embedding)
	if err != nil {
		return err
	}
	defer index.Close()

	validator := domain.NewFileValidator(settings.AllowedExtensions, settings.MaxFileSizeMB)

	cli.SetVersion(version)
	cli.SetServices(
		services.NewIngestionService(validator, cleaner, pipeline, embedding, index),
		services.NewSearchService(embedding, index),
		services.NewDocumentService(index, cleaner),
	)

	return cli.Execute()
}
