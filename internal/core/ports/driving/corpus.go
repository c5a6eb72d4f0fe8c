package driving

import (
	"context"
	"iter"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// CorpusService builds the article corpus from raw files.
type CorpusService interface {
	// Load parses every article file in shuffled order.
	// Malformed files are skipped and reported, never returned as errors.
	Load(ctx context.Context, opts domain.LoadOptions) ([]domain.Article, *domain.LoadReport, error)

	// Iter is the lazy form of Load. It yields the same articles in the
	// same order for the same seed and can be consumed once.
	Iter(ctx context.Context, opts domain.LoadOptions) iter.Seq2[domain.Article, error]

	// Ingest loads the corpus and writes it to outPath.
	Ingest(ctx context.Context, opts domain.LoadOptions, outPath string) (*domain.LoadReport, error)

	// Read returns a previously written corpus.
	Read(ctx context.Context, path string) ([]domain.Article, error)
}
