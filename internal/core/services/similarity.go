package services

import (
	"context"
	"fmt"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
)

// Ensure SimilarityService implements the interface.
var _ driving.SimilarityService = (*SimilarityService)(nil)

// SimilarityService ranks stored vectors by cosine similarity.
type SimilarityService struct {
	vectors driven.VectorStore
	builder driven.VectorIndexBuilder
}

// NewSimilarityService creates a new similarity service.
// The builder is only needed by Neighbors and Query.
func NewSimilarityService(vectors driven.VectorStore, builder driven.VectorIndexBuilder) *SimilarityService {
	return &SimilarityService{
		vectors: vectors,
		builder: builder,
	}
}

// TopPairs returns the k most similar distinct pairs by exact cosine
// similarity.
func (s *SimilarityService) TopPairs(ctx context.Context, k int) ([]domain.SimilarPair, error) {
	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Section("Exact Pairs")
	logger.Debug("Vectors: %d, k: %d", set.Len(), k)

	pairs, err := TopSimilarPairs(set.Vectors(), k)
	if err != nil {
		return nil, err
	}
	for i := range pairs {
		pairs[i].RecordI = set.Records[pairs[i].I].RecordID
		pairs[i].RecordJ = set.Records[pairs[i].J].RecordID
	}
	return pairs, nil
}

// Neighbors runs both index queries for the stored vector at position.
// The vector itself is removed from both result lists.
func (s *SimilarityService) Neighbors(ctx context.Context, position, k int) (*domain.NeighborReport, error) {
	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= set.Len() {
		return nil, fmt.Errorf("%w: position %d out of range [0, %d)", domain.ErrInvalidInput, position, set.Len())
	}

	idx, err := s.build(ctx, set)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	logger.Section("Neighbours")
	target := set.Records[position]
	logger.Debug("Target: %d (%s), k: %d", position, target.RecordID, k)

	report, err := search(ctx, idx, target.Vector, k, position)
	if err != nil {
		return nil, err
	}
	report.Target = target.RecordID
	return report, nil
}

// Query runs both index queries for an arbitrary vector.
func (s *SimilarityService) Query(ctx context.Context, vector []float32, k int) (*domain.NeighborReport, error) {
	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := s.build(ctx, set)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	logger.Section("Query")
	return search(ctx, idx, vector, k, -1)
}

func (s *SimilarityService) load(ctx context.Context) (*domain.VectorSet, error) {
	set, err := s.vectors.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	return set, nil
}

func (s *SimilarityService) build(ctx context.Context, set *domain.VectorSet) (driven.VectorIndex, error) {
	if s.builder == nil {
		return nil, fmt.Errorf("build index: index builder not configured")
	}
	idx, err := s.builder.Build(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return idx, nil
}

// search runs both query forms. When exclude is a valid position it is
// dropped from the results and one extra candidate is requested.
func search(
	ctx context.Context,
	idx driven.VectorIndex,
	query []float32,
	k int,
	exclude int,
) (*domain.NeighborReport, error) {
	if k <= 0 {
		return &domain.NeighborReport{Similar: []domain.Neighbor{}, Nearest: []domain.Neighbor{}, Agreement: 1}, nil
	}
	want := k
	if exclude >= 0 {
		want++
	}

	similar, err := idx.SearchSimilar(ctx, query, want)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	nearest, err := idx.SearchNearest(ctx, query, want)
	if err != nil {
		return nil, fmt.Errorf("search nearest: %w", err)
	}

	report := &domain.NeighborReport{
		Similar: dropPosition(similar, exclude, k),
		Nearest: dropPosition(nearest, exclude, k),
	}
	report.Agreement = agreement(report.Similar, report.Nearest)

	if report.Agreement < 1 {
		logger.Warn("Approximate search agreed on %.0f%% of %d neighbours",
			report.Agreement*100, len(report.Similar))
	}
	logger.Debug("Similar: %d, nearest: %d, agreement: %.2f",
		len(report.Similar), len(report.Nearest), report.Agreement)
	return report, nil
}

// dropPosition removes the neighbour at position and caps the list at k.
func dropPosition(neighbors []domain.Neighbor, position, k int) []domain.Neighbor {
	out := make([]domain.Neighbor, 0, k)
	for _, n := range neighbors {
		if n.Index == position {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, n)
	}
	return out
}

// agreement returns the fraction of similar ids found in nearest.
// Two empty lists agree fully.
func agreement(similar, nearest []domain.Neighbor) float64 {
	if len(similar) == 0 {
		return 1
	}
	ids := make(map[string]struct{}, len(nearest))
	for _, n := range nearest {
		ids[n.RecordID] = struct{}{}
	}
	hits := 0
	for _, n := range similar {
		if _, ok := ids[n.RecordID]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(similar))
}
