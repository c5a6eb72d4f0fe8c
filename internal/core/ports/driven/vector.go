package driven

import (
	"context"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// VectorIndex answers similarity queries over a fixed set of vectors.
// The dimension is fixed when the index is built.
type VectorIndex interface {
	// SearchSimilar ranks every stored vector by descending cosine
	// similarity to the query and returns the top k.
	SearchSimilar(ctx context.Context, query []float32, k int) ([]domain.Neighbor, error)

	// SearchNearest returns the approximate k nearest neighbours by
	// ascending cosine distance.
	SearchNearest(ctx context.Context, query []float32, k int) ([]domain.Neighbor, error)

	// Dimension returns the vector length accepted by the index.
	Dimension() int

	// Len returns the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorIndexBuilder builds a VectorIndex from a vector set.
type VectorIndexBuilder interface {
	// Build indexes every record of the set. Positions in query results
	// refer to record positions.
	Build(ctx context.Context, set *domain.VectorSet) (VectorIndex, error)
}

// VectorStore persists the embedding artifact.
// Each Save replaces the previously stored set.
type VectorStore interface {
	// Save replaces the stored set.
	Save(ctx context.Context, set *domain.VectorSet) error

	// Load returns the stored set ordered by position.
	// Returns domain.ErrNotFound if nothing has been saved.
	Load(ctx context.Context) (*domain.VectorSet, error)

	// Close releases resources.
	Close() error
}
