package livedoor

import (
	"context"
	"fmt"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles livedoor article files.
type Normaliser struct{}

// New creates a new livedoor normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the record format handled.
func (n *Normaliser) Name() string {
	return "livedoor"
}

// Normalise parses a raw article file. The publisher comes from the
// document metadata.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	article, err := ParseLines(SplitLines(raw.Content), raw.Publisher())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw.URI, err)
	}

	return &driven.NormaliseResult{Article: article}, nil
}
