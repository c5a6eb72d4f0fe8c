// Package vecmath holds the cosine kernels shared by the exact similarity
// engine and the vector index. Accumulation is done in float64.
package vecmath

import (
	"fmt"
	"math"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// Dot returns the inner product of a and b. Lengths must match.
func Dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}

// CheckVector fails with domain.ErrDimensionMismatch when len(v) != dim
// and domain.ErrDegenerateVector when v has zero length. It returns the norm.
func CheckVector(v []float32, dim int) (float64, error) {
	if len(v) != dim {
		return 0, fmt.Errorf("%w: got %d dimensions, want %d", domain.ErrDimensionMismatch, len(v), dim)
	}
	n := Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: norm is %v", domain.ErrDegenerateVector, n)
	}
	return n, nil
}

// Cosine returns dot(a,b)/(|a||b|), clamped to [-1, 1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	na, err := CheckVector(a, len(a))
	if err != nil {
		return 0, err
	}
	nb, err := CheckVector(b, len(b))
	if err != nil {
		return 0, err
	}
	return CosineWithNorms(a, b, na, nb), nil
}

// CosineWithNorms is Cosine for vectors whose norms are already known.
func CosineWithNorms(a, b []float32, na, nb float64) float64 {
	return Clamp(Dot(a, b) / (na * nb))
}

// Clamp bounds a similarity to [-1, 1] to absorb rounding.
func Clamp(s float64) float64 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}

// Truncate returns the first dim components of v, or v when it is
// already short enough. The result is not renormalised.
func Truncate(v []float32, dim int) []float32 {
	if dim <= 0 || dim >= len(v) {
		return v
	}
	return v[:dim:dim]
}
