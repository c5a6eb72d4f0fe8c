package driven

import (
	"context"
	"iter"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// CorpusStore persists a corpus as an ordered sequence of articles.
type CorpusStore interface {
	// Write replaces the file at path with the articles, in order.
	Write(ctx context.Context, path string, articles []domain.Article) error

	// Read returns every article at path, preserving order.
	// Fails with domain.ErrIO or domain.ErrDecode.
	Read(ctx context.Context, path string) ([]domain.Article, error)

	// Iter streams the articles at path. Iteration stops at the first error.
	Iter(ctx context.Context, path string) iter.Seq2[domain.Article, error]
}
