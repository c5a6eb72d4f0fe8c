package domain

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderStatic is the built-in hashed n-gram embedder. It runs offline.
	AIProviderStatic AIProvider = "static"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API or a compatible server.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderStatic, AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderStatic || p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderStatic:
		return "Static (built-in, offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the native vector size of the model.
	Dimensions int

	// TruncateDim keeps only the first TruncateDim components of every
	// vector. Zero disables truncation.
	TruncateDim int

	// BatchSize is the number of texts sent per embedding call.
	BatchSize int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// OutputDimensions returns the vector length after truncation.
func (e EmbeddingSettings) OutputDimensions() int {
	if e.TruncateDim > 0 && (e.Dimensions == 0 || e.TruncateDim < e.Dimensions) {
		return e.TruncateDim
	}
	return e.Dimensions
}

// IndexSettings holds HNSW index configuration.
type IndexSettings struct {
	// M is the maximum number of neighbours per graph node.
	M int

	// EfSearch is the candidate list size used while searching.
	EfSearch int

	// Seed fixes the random level assignment so builds are reproducible.
	Seed int64
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Index holds vector index settings.
	Index IndexSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The static provider needs no network access, so the pipeline works
// out-of-the-box.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:   AIProviderStatic,
			Model:      DefaultEmbeddingModels()[AIProviderStatic],
			Dimensions: 1024,
			BatchSize:  64,
		},
		Index: IndexSettings{
			M:        16,
			EfSearch: 100,
			Seed:     42,
		},
	}
}

// AllEmbeddingProviders returns every supported provider.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderStatic,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderStatic: "static-ngram-ja",
		AIProviderOllama: "mxbai-embed-large",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"static-ngram-ja": 1024,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"bge-m3":            1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
