package file

import (
	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
)

// Configuration keys recognised in config.toml. Nested tables are
// flattened to dot notation by the store.
const (
	KeyChunkSize         = "chunking.size"
	KeyChunkOverlap      = "chunking.overlap"
	KeyCleaningStrategy  = "cleaning.strategy"
	KeyPreserveCode      = "cleaning.preserve_code_blocks"
	KeyPreserveHeadings  = "cleaning.preserve_headings"
	KeyMaxFileSizeMB     = "files.max_size_mb"
	KeyAllowedExtensions = "files.allowed_extensions"
	KeyProvider          = "embedding.provider"
	KeyModel             = "embedding.model"
	KeyBaseURL           = "embedding.base_url"
	KeyAPIKeyEnv         = "embedding.api_key_env"
	KeyBatchSize         = "embedding.batch_size"
	KeyIdentifier        = "embedding.identifier"
)

// LoadSettings builds domain settings from the config store, filling
// anything unset with defaults. The result is validated before return.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if store.Has(KeyChunkSize) {
		settings.ChunkSize = store.GetInt(KeyChunkSize)
	}
	if store.Has(KeyChunkOverlap) {
		settings.ChunkOverlap = store.GetInt(KeyChunkOverlap)
	}
	if store.Has(KeyCleaningStrategy) {
		settings.Cleaning.Strategy = domain.ParseCleaningStrategy(store.GetString(KeyCleaningStrategy))
	}
	if store.Has(KeyPreserveCode) {
		settings.Cleaning.PreserveCodeBlocks = store.GetBool(KeyPreserveCode)
	}
	if store.Has(KeyPreserveHeadings) {
		settings.Cleaning.PreserveHeadingsAsContext = store.GetBool(KeyPreserveHeadings)
	}
	if store.Has(KeyMaxFileSizeMB) {
		settings.MaxFileSizeMB = store.GetFloat(KeyMaxFileSizeMB)
	}
	if store.Has(KeyAllowedExtensions) {
		settings.AllowedExtensions = store.GetStringSlice(KeyAllowedExtensions)
	}
	if store.Has(KeyProvider) {
		settings.Embedding.Provider = domain.EmbeddingProvider(store.GetString(KeyProvider))
	}
	if store.Has(KeyModel) {
		settings.Embedding.Model = store.GetString(KeyModel)
	}
	if store.Has(KeyBaseURL) {
		settings.Embedding.BaseURL = store.GetString(KeyBaseURL)
	}
	if store.Has(KeyAPIKeyEnv) {
		settings.Embedding.APIKeyEnv = store.GetString(KeyAPIKeyEnv)
	}
	if store.Has(KeyBatchSize) {
		settings.Embedding.BatchSize = store.GetInt(KeyBatchSize)
	}
	if store.Has(KeyIdentifier) {
		settings.Embedding.Identifier = store.GetString(KeyIdentifier)
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
