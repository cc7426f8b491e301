package domain

import "fmt"

const unknownDescription = "Unknown"

// CleaningStrategy controls how aggressively structural markup is
// stripped from source text before chunking. Each tier is a strict
// superset of the previous one.
type CleaningStrategy string

// Available cleaning strategies.
const (
	// StrategyConservative strips only the most obvious formatting:
	// emphasis, inline code delimiters, horizontal rules, table borders.
	StrategyConservative CleaningStrategy = "conservative"

	// StrategyBalanced additionally strips links, images, blockquote
	// and list markers while keeping their human-readable text.
	StrategyBalanced CleaningStrategy = "balanced"

	// StrategyAggressive additionally strips strikethrough, highlight,
	// super/subscript markers and any remaining structural symbols.
	StrategyAggressive CleaningStrategy = "aggressive"
)

// IsValid returns true if the strategy is recognised.
func (s CleaningStrategy) IsValid() bool {
	switch s {
	case StrategyConservative, StrategyBalanced, StrategyAggressive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s CleaningStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s CleaningStrategy) Description() string {
	switch s {
	case StrategyConservative:
		return "Conservative (strip obvious formatting only)"
	case StrategyBalanced:
		return "Balanced (strip formatting, keep semantic text)"
	case StrategyAggressive:
		return "Aggressive (maximal plain-text extraction)"
	default:
		return unknownDescription
	}
}

// ParseCleaningStrategy maps a configured name to a strategy.
// Unrecognised names fall back to balanced rather than failing.
func ParseCleaningStrategy(name string) CleaningStrategy {
	s := CleaningStrategy(name)
	if !s.IsValid() {
		return StrategyBalanced
	}
	return s
}

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

// Available embedding providers.
const (
	// ProviderOpenAI is the OpenAI cloud embeddings API.
	ProviderOpenAI EmbeddingProvider = "openai"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama EmbeddingProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// EmbeddingSettings holds embedding backend configuration.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider EmbeddingProvider

	// Model is the embedding model name (provider default when empty).
	Model string

	// BaseURL overrides the provider API endpoint.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// BatchSize is the upstream batch ceiling per embedding request.
	BatchSize int

	// Identifier overrides the backend identity used to name the
	// index collection. Defaults to the provider name.
	Identifier string
}

// BackendID returns the backend identity that pairs this backend with
// its own index collection. Vectors from two different backends never
// share a collection.
func (e EmbeddingSettings) BackendID() string {
	if e.Identifier != "" {
		return e.Identifier
	}
	return e.Provider.String()
}

// CleaningSettings holds markdown cleaning configuration.
type CleaningSettings struct {
	// Strategy is the cleaning tier.
	Strategy CleaningStrategy

	// PreserveCodeBlocks keeps fenced code content (delimiters are
	// stripped either way); false deletes fenced blocks entirely.
	PreserveCodeBlocks bool

	// PreserveHeadingsAsContext keeps heading text inline. Heading
	// markers are stripped regardless; see the markdown cleaner for
	// the observed equivalence of both settings.
	PreserveHeadingsAsContext bool
}

// Settings holds the full ingestion and search configuration.
type Settings struct {
	// ChunkSize is the maximum characters per chunk. Must be > 0.
	ChunkSize int

	// ChunkOverlap is the overlapping characters between consecutive
	// chunks. Must satisfy 0 <= overlap < chunk size.
	ChunkOverlap int

	// Cleaning configures the markdown cleaner.
	Cleaning CleaningSettings

	// MaxFileSizeMB is the per-file size ceiling in megabytes.
	MaxFileSizeMB float64

	// AllowedExtensions is the ingestion extension allow-list.
	AllowedExtensions []string

	// Embedding configures the embedding backend.
	Embedding EmbeddingSettings
}

// Default configuration values.
const (
	DefaultChunkSize     = 1000
	DefaultChunkOverlap  = 200
	DefaultMaxFileSizeMB = 5.0
)

// DefaultSettings returns settings that work out of the box with a
// local Ollama instance.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Cleaning: CleaningSettings{
			Strategy:                  StrategyBalanced,
			PreserveCodeBlocks:        true,
			PreserveHeadingsAsContext: true,
		},
		MaxFileSizeMB:     DefaultMaxFileSizeMB,
		AllowedExtensions: []string{".md"},
		Embedding: EmbeddingSettings{
			Provider: ProviderOllama,
		},
	}
}

// Validate checks the chunking parameters. Violations are fatal at
// construction time, never deferred to first use.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidInput, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must be non-negative, got %d", ErrInvalidInput, s.ChunkOverlap)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			ErrInvalidInput, s.ChunkOverlap, s.ChunkSize)
	}
	if s.MaxFileSizeMB <= 0 {
		return fmt.Errorf("%w: max_file_size_mb must be positive", ErrInvalidInput)
	}
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidInput, s.Embedding.Provider)
	}
	return nil
}
