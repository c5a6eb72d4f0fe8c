package driving

import (
	"context"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// ProgressFunc reports embedding progress after each batch.
type ProgressFunc func(done, total int)

// EmbeddingPipeline turns article bodies into a persisted vector set.
type EmbeddingPipeline interface {
	// Embed produces one vector per article, in article order.
	Embed(ctx context.Context, articles []domain.Article, progress ProgressFunc) (*domain.VectorSet, error)

	// EmbedCorpus reads the corpus at path, embeds it and saves the vectors.
	EmbedCorpus(ctx context.Context, path string, progress ProgressFunc) (*domain.VectorSet, error)

	// EmbedQuery embeds free text with the same model and truncation.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
