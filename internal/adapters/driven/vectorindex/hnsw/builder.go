package hnsw

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
)

// Ensure Builder implements the interface.
var _ driven.VectorIndexBuilder = (*Builder)(nil)

// Builder builds indexes, optionally reusing a graph file.
type Builder struct {
	cfg       Config
	cachePath string
}

// NewBuilder creates a builder. When cachePath is set, a matching saved
// graph is loaded instead of rebuilt, and fresh builds are written there.
func NewBuilder(cfg Config, cachePath string) *Builder {
	return &Builder{cfg: cfg, cachePath: cachePath}
}

// Build returns an index over set.
func (b *Builder) Build(ctx context.Context, set *domain.VectorSet) (driven.VectorIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if b.cachePath != "" {
		idx, err := LoadFile(b.cachePath, set, b.cfg)
		if err == nil {
			logger.Info("Loaded HNSW graph from %s (%d nodes)", b.cachePath, idx.Len())
			return idx, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Rebuilding HNSW graph: %v", err)
		}
	}

	start := time.Now()
	idx, err := Build(set, b.cfg)
	if err != nil {
		return nil, err
	}
	logger.Elapsed("HNSW build", start)

	if b.cachePath != "" {
		if err := idx.SaveFile(b.cachePath); err != nil {
			return nil, err
		}
		logger.Debug("Saved HNSW graph to %s", b.cachePath)
	}
	return idx, nil
}
