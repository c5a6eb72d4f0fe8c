package memory

import (
	"context"
	"sync"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore keeps one vector set in memory.
type VectorStore struct {
	mu  sync.RWMutex
	set *domain.VectorSet
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// Save replaces the stored set with a deep copy of set.
func (s *VectorStore) Save(_ context.Context, set *domain.VectorSet) error {
	if set == nil {
		return domain.ErrInvalidInput
	}
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = copySet(set)
	return nil
}

// Load returns a copy of the stored set.
func (s *VectorStore) Load(_ context.Context) (*domain.VectorSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set == nil {
		return nil, domain.ErrNotFound
	}
	return copySet(s.set), nil
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}

func copySet(set *domain.VectorSet) *domain.VectorSet {
	out := &domain.VectorSet{
		Dimension: set.Dimension,
		Model:     set.Model,
		Records:   make([]domain.EmbeddingRecord, len(set.Records)),
	}
	for i, rec := range set.Records {
		out.Records[i] = domain.EmbeddingRecord{
			RecordID: rec.RecordID,
			Position: rec.Position,
			Vector:   append([]float32(nil), rec.Vector...),
		}
	}
	return out
}
