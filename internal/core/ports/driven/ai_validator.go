package driven

import "github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"

// AIConfigValidator checks that an embedding provider can be reached with
// the given settings.
type AIConfigValidator interface {
	// ValidateEmbedding pings the configured provider. An unconfigured
	// provider is not an error.
	ValidateEmbedding(settings *domain.EmbeddingSettings) error
}
