package domain

import "fmt"

// EmbeddingRecord is one embedding vector joined to its article.
type EmbeddingRecord struct {
	// RecordID is Article.ID() of the embedded article.
	RecordID string

	// Position is the corpus line index the vector was produced from.
	Position int

	// Vector is the embedding.
	Vector []float32
}

// VectorSet is the persisted embedding artifact.
// Records are ordered by Position.
type VectorSet struct {
	// Dimension is the length of every vector.
	Dimension int

	// Model names the embedding model that produced the vectors.
	Model string

	// Records holds one entry per corpus article.
	Records []EmbeddingRecord
}

// Len returns the number of vectors.
func (s *VectorSet) Len() int {
	return len(s.Records)
}

// Vectors returns the raw vectors in position order.
func (s *VectorSet) Vectors() [][]float32 {
	out := make([][]float32, len(s.Records))
	for i := range s.Records {
		out[i] = s.Records[i].Vector
	}
	return out
}

// IDs returns the record identifiers in position order.
func (s *VectorSet) IDs() []string {
	out := make([]string, len(s.Records))
	for i := range s.Records {
		out[i] = s.Records[i].RecordID
	}
	return out
}

// Validate checks the alignment invariants of the set: every vector has
// the declared dimension, positions run 0..n-1 and ids are unique.
func (s *VectorSet) Validate() error {
	if s.Dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidInput, s.Dimension)
	}
	seen := make(map[string]struct{}, len(s.Records))
	for i, rec := range s.Records {
		if len(rec.Vector) != s.Dimension {
			return fmt.Errorf("%w: record %d has %d dimensions, want %d",
				ErrDimensionMismatch, i, len(rec.Vector), s.Dimension)
		}
		if rec.Position != i {
			return fmt.Errorf("%w: record %d has position %d", ErrInvalidInput, i, rec.Position)
		}
		if rec.RecordID == "" {
			return fmt.Errorf("%w: record %d has no id", ErrInvalidInput, i)
		}
		if _, dup := seen[rec.RecordID]; dup {
			return fmt.Errorf("%w: duplicate record id %s", ErrInvalidInput, rec.RecordID)
		}
		seen[rec.RecordID] = struct{}{}
	}
	return nil
}
