package driven

import (
	"context"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// Normaliser transforms raw documents into articles.
type Normaliser interface {
	// Name identifies the record format handled.
	Name() string

	// Normalise parses a raw document.
	// Returns an error wrapping domain.ErrMalformedRecord for invalid input.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Article is the parsed record.
	Article domain.Article
}
