package driving

import (
	"context"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// SimilarityService ranks stored vectors against each other or a query.
type SimilarityService interface {
	// TopPairs returns the k most similar distinct pairs by exact cosine
	// similarity.
	TopPairs(ctx context.Context, k int) ([]domain.SimilarPair, error)

	// Neighbors runs both index queries for the stored vector at position,
	// excluding the vector itself.
	Neighbors(ctx context.Context, position, k int) (*domain.NeighborReport, error)

	// Query runs both index queries for an arbitrary vector.
	Query(ctx context.Context, vector []float32, k int) (*domain.NeighborReport, error)
}
