package filesystem

import (
	"fmt"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory creates filesystem connectors that share a file pattern.
type Factory struct {
	pattern string
}

// NewFactory creates a factory. An empty pattern means DefaultPattern.
func NewFactory(pattern string) *Factory {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Factory{pattern: pattern}
}

// Create returns a connector for root.
func (f *Factory) Create(root string) (driven.Connector, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: corpus root is required", domain.ErrInvalidInput)
	}
	return New(root).WithPattern(f.pattern), nil
}
