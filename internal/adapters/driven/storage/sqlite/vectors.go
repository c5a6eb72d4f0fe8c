package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

var _ driven.VectorStore = (*Store)(nil)

// Save replaces the stored vector set in a single transaction.
func (s *Store) Save(ctx context.Context, set *domain.VectorSet) error {
	if set == nil {
		return domain.ErrInvalidInput
	}
	if err := set.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM vectors"); err != nil {
		return fmt.Errorf("clearing vectors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM vector_meta"); err != nil {
		return fmt.Errorf("clearing vector meta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO vector_meta (id, dimension, model, metric) VALUES (1, ?, ?, ?)
	`, set.Dimension, set.Model, domain.MetricCosine); err != nil {
		return fmt.Errorf("inserting vector meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (record_id, position, embedding) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range set.Records {
		if _, err := stmt.ExecContext(ctx, rec.RecordID, rec.Position, float32SliceToBytes(rec.Vector)); err != nil {
			return fmt.Errorf("inserting vector %s: %w", rec.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing vectors: %w", err)
	}
	return nil
}

// Load returns the stored set ordered by position.
// Returns domain.ErrNotFound if nothing has been saved.
func (s *Store) Load(ctx context.Context) (*domain.VectorSet, error) {
	set := &domain.VectorSet{}
	err := s.db.QueryRowContext(ctx, "SELECT dimension, model FROM vector_meta WHERE id = 1").
		Scan(&set.Dimension, &set.Model)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no vectors in %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("querying vector meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT record_id, position, embedding FROM vectors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if len(rec.Vector) != set.Dimension {
			return nil, fmt.Errorf("%w: stored vector %s has %d dimensions, want %d",
				domain.ErrDimensionMismatch, rec.RecordID, len(rec.Vector), set.Dimension)
		}
		set.Records = append(set.Records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	return set, nil
}

// scanRecord scans a single vectors row.
func scanRecord(rows *sql.Rows) (*domain.EmbeddingRecord, error) {
	var rec domain.EmbeddingRecord
	var blob []byte
	if err := rows.Scan(&rec.RecordID, &rec.Position, &blob); err != nil {
		return nil, fmt.Errorf("scanning vector: %w", err)
	}
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: vector %s blob length %d", domain.ErrDecode, rec.RecordID, len(blob))
	}
	rec.Vector = bytesToFloat32Slice(blob)
	return &rec, nil
}
