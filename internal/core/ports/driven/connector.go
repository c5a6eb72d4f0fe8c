package driven

import (
	"context"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// Connector enumerates and reads raw article files from a data source.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Validate checks the source exists and is readable.
	Validate(ctx context.Context) error

	// List returns the URIs of every article file, sorted.
	List(ctx context.Context) ([]string, error)

	// Read returns the raw content and metadata of one article file.
	Read(ctx context.Context, uri string) (*domain.RawDocument, error)
}

// ConnectorFactory creates a connector rooted at a corpus location.
type ConnectorFactory interface {
	// Create returns a connector for root.
	Create(root string) (Connector, error)
}
