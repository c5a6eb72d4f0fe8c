package hnsw

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	coderhnsw "github.com/coder/hnsw"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/vecmath"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default graph parameters.
const (
	DefaultM        = 16
	DefaultEfSearch = 100
	DefaultMl       = 0.25
	DefaultSeed     = 42
)

// Config holds HNSW graph parameters.
type Config struct {
	// M is the maximum number of neighbours per node (default: 16).
	M int

	// EfSearch is the candidate list size during search (default: 100).
	EfSearch int

	// Ml is the level generation factor (default: 0.25).
	Ml float64

	// Seed drives level assignment so builds are reproducible.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.M <= 0 {
		c.M = DefaultM
	}
	if c.EfSearch <= 0 {
		c.EfSearch = DefaultEfSearch
	}
	if c.Ml <= 0 {
		c.Ml = DefaultMl
	}
	return c
}

// Index is an immutable cosine index over one vector set.
type Index struct {
	mu      sync.Mutex
	graph   *coderhnsw.Graph[int]
	cfg     Config
	dim     int
	vectors [][]float32
	norms   []float64
	ids     []string
}

// Build indexes every record of set. Records with a zero norm are rejected
// with domain.ErrDegenerateVector.
func Build(set *domain.VectorSet, cfg Config) (*Index, error) {
	idx, err := newIndex(set, cfg)
	if err != nil {
		return nil, err
	}

	g := coderhnsw.NewGraph[int]()
	g.M = idx.cfg.M
	g.EfSearch = idx.cfg.EfSearch
	g.Ml = idx.cfg.Ml
	g.Distance = coderhnsw.CosineDistance
	g.Rng = rand.New(rand.NewSource(idx.cfg.Seed)) //nolint:gosec // level assignment, not security

	for i, v := range idx.vectors {
		g.Add(coderhnsw.MakeNode(i, v))
	}
	idx.graph = g
	return idx, nil
}

// newIndex validates set and precomputes norms. The graph is left nil.
func newIndex(set *domain.VectorSet, cfg Config) (*Index, error) {
	if set == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	idx := &Index{
		cfg:     cfg.withDefaults(),
		dim:     set.Dimension,
		vectors: set.Vectors(),
		ids:     set.IDs(),
		norms:   make([]float64, set.Len()),
	}
	for i, v := range idx.vectors {
		n, err := vecmath.CheckVector(v, idx.dim)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", idx.ids[i], err)
		}
		idx.norms[i] = n
	}
	return idx, nil
}

// SearchSimilar ranks every stored vector by descending cosine similarity.
// Ties are broken by ascending position.
func (x *Index) SearchSimilar(ctx context.Context, query []float32, k int) ([]domain.Neighbor, error) {
	qn, err := x.checkQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	k = x.clampK(k)
	if k == 0 {
		return []domain.Neighbor{}, nil
	}

	all := make([]domain.Neighbor, len(x.vectors))
	for i, v := range x.vectors {
		all[i] = x.neighbor(i, vecmath.CosineWithNorms(query, v, qn, x.norms[i]))
	}
	sort.SliceStable(all, func(a, b int) bool {
		if all[a].Similarity != all[b].Similarity {
			return all[a].Similarity > all[b].Similarity
		}
		return all[a].Index < all[b].Index
	})
	return all[:k], nil
}

// SearchNearest returns the approximate k nearest neighbours from the graph
// by ascending cosine distance. The graph is asked for max(k, EfSearch)
// candidates, since its layer-0 search stops once it holds as many results
// as requested; the candidates are re-ranked and cut to k.
func (x *Index) SearchNearest(ctx context.Context, query []float32, k int) ([]domain.Neighbor, error) {
	qn, err := x.checkQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	k = x.clampK(k)
	if k == 0 || x.graph.Len() == 0 {
		return []domain.Neighbor{}, nil
	}
	fetch := x.clampK(max(k, x.cfg.EfSearch))

	x.mu.Lock()
	ef := x.graph.EfSearch
	x.graph.EfSearch = fetch
	nodes := x.graph.Search(query, fetch)
	x.graph.EfSearch = ef
	x.mu.Unlock()

	out := make([]domain.Neighbor, 0, len(nodes))
	for _, node := range nodes {
		pos := node.Key
		out = append(out, x.neighbor(pos, vecmath.CosineWithNorms(query, x.vectors[pos], qn, x.norms[pos])))
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Distance != out[b].Distance {
			return out[a].Distance < out[b].Distance
		}
		return out[a].Index < out[b].Index
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// Dimension returns the vector length accepted by the index.
func (x *Index) Dimension() int {
	return x.dim
}

// Len returns the number of indexed vectors.
func (x *Index) Len() int {
	return len(x.vectors)
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

func (x *Index) checkQuery(ctx context.Context, query []float32) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := vecmath.CheckVector(query, x.dim)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}

func (x *Index) clampK(k int) int {
	if k <= 0 {
		return 0
	}
	if k > len(x.vectors) {
		return len(x.vectors)
	}
	return k
}

func (x *Index) neighbor(pos int, sim float64) domain.Neighbor {
	return domain.Neighbor{
		Index:      pos,
		RecordID:   x.ids[pos],
		Similarity: sim,
		Distance:   1 - sim,
	}
}
