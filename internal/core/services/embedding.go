package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/vecmath"
)

// Ensure EmbeddingPipeline implements the interface.
var _ driving.EmbeddingPipeline = (*EmbeddingPipeline)(nil)

// DefaultBatchSize is the number of bodies sent per embedding call.
const DefaultBatchSize = 64

// EmbeddingConfig tunes the pipeline.
type EmbeddingConfig struct {
	// BatchSize is the number of texts per EmbedBatch call (default: 64).
	BatchSize int

	// TruncateDim keeps the first TruncateDim components of each vector.
	// Zero disables truncation.
	TruncateDim int
}

// EmbeddingPipeline embeds article bodies and persists the vectors.
type EmbeddingPipeline struct {
	embedder driven.EmbeddingService
	corpus   driven.CorpusStore
	vectors  driven.VectorStore
	cfg      EmbeddingConfig
}

// NewEmbeddingPipeline creates a new embedding pipeline.
// corpus and vectors are only needed by EmbedCorpus.
func NewEmbeddingPipeline(
	embedder driven.EmbeddingService,
	corpus driven.CorpusStore,
	vectors driven.VectorStore,
	cfg EmbeddingConfig,
) *EmbeddingPipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &EmbeddingPipeline{
		embedder: embedder,
		corpus:   corpus,
		vectors:  vectors,
		cfg:      cfg,
	}
}

// Embed produces one vector per article, in article order.
// Every vector is checked against the provider's dimension before the
// set is returned.
func (p *EmbeddingPipeline) Embed(
	ctx context.Context,
	articles []domain.Article,
	progress driving.ProgressFunc,
) (*domain.VectorSet, error) {
	if p.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Embedding")
	native := p.embedder.Dimensions()
	logger.Debug("Model: %s, dimensions: %d, batch size: %d", p.embedder.ModelName(), native, p.cfg.BatchSize)

	texts := domain.Bodies(articles)
	total := len(texts)
	records := make([]domain.EmbeddingRecord, 0, total)

	for start := 0; start < total; start += p.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+p.cfg.BatchSize, total)

		vecs, err := p.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("embed batch %d-%d: provider returned %d vectors for %d texts",
				start, end, len(vecs), end-start)
		}

		for i, v := range vecs {
			pos := start + i
			if len(v) != native {
				return nil, fmt.Errorf("%w: article %d has %d dimensions, want %d",
					domain.ErrDimensionMismatch, pos, len(v), native)
			}
			records = append(records, domain.EmbeddingRecord{
				RecordID: articles[pos].ID(),
				Position: pos,
				Vector:   vecmath.Truncate(v, p.cfg.TruncateDim),
			})
		}

		if progress != nil {
			progress(end, total)
		}
	}

	set := &domain.VectorSet{
		Dimension: p.outputDimension(native),
		Model:     p.embedder.ModelName(),
		Records:   records,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// EmbedCorpus reads the corpus at path, embeds it and saves the vectors.
func (p *EmbeddingPipeline) EmbedCorpus(
	ctx context.Context,
	path string,
	progress driving.ProgressFunc,
) (*domain.VectorSet, error) {
	if p.corpus == nil || p.vectors == nil {
		return nil, fmt.Errorf("embed corpus: stores not configured")
	}

	articles, err := p.corpus.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	logger.Info("Read %d articles from %s", len(articles), path)

	start := time.Now()
	set, err := p.Embed(ctx, articles, progress)
	if err != nil {
		return nil, err
	}
	logger.Elapsed("Embedding time", start)

	if set.Len() != len(articles) {
		return nil, fmt.Errorf("%w: %d vectors for %d articles", domain.ErrInvalidInput, set.Len(), len(articles))
	}
	if err := p.vectors.Save(ctx, set); err != nil {
		return nil, fmt.Errorf("save vectors: %w", err)
	}

	logger.Info("Saved %d vectors (%d dimensions, model %s)", set.Len(), set.Dimension, set.Model)
	return set, nil
}

// EmbedQuery embeds free text with the same model and truncation.
func (p *EmbeddingPipeline) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if p.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: query text is empty", domain.ErrInvalidInput)
	}

	v, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	native := p.embedder.Dimensions()
	if len(v) != native {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d", domain.ErrDimensionMismatch, len(v), native)
	}
	return vecmath.Truncate(v, p.cfg.TruncateDim), nil
}

func (p *EmbeddingPipeline) outputDimension(native int) int {
	if p.cfg.TruncateDim > 0 && p.cfg.TruncateDim < native {
		return p.cfg.TruncateDim
	}
	return native
}
