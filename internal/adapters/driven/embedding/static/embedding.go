// Package static provides an offline embedding service.
//
// Text is broken into character unigrams and bigrams. Each n-gram is hashed
// with xxhash into one of Dimensions buckets, counts are damped with
// 1+ln(count) and the result is L2 normalised. The output is deterministic
// and needs no model download, which makes it a stand-in for a static
// embedding model on Japanese text.
package static

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "static-ngram-ja"
	DefaultDimensions = 1024
)

// Config holds configuration for the static embedding service.
type Config struct {
	// Model is the reported model name (default: static-ngram-ja).
	Model string

	// Dimensions is the number of hash buckets (default: 1024).
	Dimensions int
}

// EmbeddingService hashes character n-grams into a fixed-size vector.
type EmbeddingService struct {
	model      string
	dimensions int
}

// NewEmbeddingService creates a new static embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed generates a unit-length vector for text.
// Text without any non-space character is rejected.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[uint64]float64)
	for _, gram := range ngrams(text) {
		counts[xxhash.Sum64String(gram)%uint64(s.dimensions)]++
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: text has no characters to embed", domain.ErrInvalidInput)
	}

	vec := make([]float64, s.dimensions)
	var norm float64
	for bucket, c := range counts {
		w := 1 + math.Log(c)
		vec[bucket] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)

	out := make([]float32, s.dimensions)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// EmbedBatch embeds each text in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping always succeeds; the service runs in-process.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// ngrams returns the lower-cased character unigrams and bigrams of text.
// Whitespace separates runs and never appears inside a gram.
func ngrams(text string) []string {
	var grams []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), unicode.IsSpace) {
		runes := []rune(field)
		for i, r := range runes {
			grams = append(grams, string(r))
			if i+1 < len(runes) {
				grams = append(grams, string(runes[i:i+2]))
			}
		}
	}
	return grams
}
