// Package domain defines the core entities of the livedoor embedding pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types that flow through the pipeline:
//
//   - Article: One parsed news article (a corpus record)
//   - RawDocument: Opaque bytes read from the corpus directory
//   - VectorSet: Embedding vectors keyed by article identifier
//   - SimilarPair / Neighbor: Ranked similarity results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
