package services

import (
	"fmt"
	"sort"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/vecmath"
)

// CosineSimilarity returns dot(a,b)/(|a||b|).
// Fails with domain.ErrDimensionMismatch or domain.ErrDegenerateVector.
func CosineSimilarity(a, b []float32) (float64, error) {
	return vecmath.Cosine(a, b)
}

// SimilarityMatrix returns the n×n matrix of pairwise cosine similarities.
// The matrix is symmetric with a unit diagonal. Every vector is validated
// before any score is computed.
func SimilarityMatrix(vectors [][]float32) ([][]float64, error) {
	norms, err := validateVectors(vectors)
	if err != nil {
		return nil, err
	}

	n := len(vectors)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := vecmath.CosineWithNorms(vectors[i], vectors[j], norms[i], norms[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m, nil
}

// TopSimilarPairs returns the k most similar pairs (i, j) with i < j,
// ordered by descending score and then ascending (i, j). At most
// n(n-1)/2 pairs are returned; k <= 0 yields an empty slice.
func TopSimilarPairs(vectors [][]float32, k int) ([]domain.SimilarPair, error) {
	norms, err := validateVectors(vectors)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return []domain.SimilarPair{}, nil
	}

	n := len(vectors)
	pairs := make([]domain.SimilarPair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, domain.SimilarPair{
				I:     i,
				J:     j,
				Score: vecmath.CosineWithNorms(vectors[i], vectors[j], norms[i], norms[j]),
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if pa.Score != pb.Score {
			return pa.Score > pb.Score
		}
		if pa.I != pb.I {
			return pa.I < pb.I
		}
		return pa.J < pb.J
	})

	if k < len(pairs) {
		pairs = pairs[:k]
	}
	return pairs, nil
}

// validateVectors checks that all vectors share the first vector's
// dimension and have a non-zero norm. It returns the norms.
func validateVectors(vectors [][]float32) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	dim := len(vectors[0])
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		n, err := vecmath.CheckVector(v, dim)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		norms[i] = n
	}
	return norms, nil
}
