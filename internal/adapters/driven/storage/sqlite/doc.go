// Package sqlite provides the SQLite-backed embedding artifact store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.VectorStore.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Vectors live in the vectors table keyed by record id,
// with their corpus position and a little-endian float32 blob. The single
// vector_meta row records the dimension and model of the set.
//
// # Persistence
//
// Every Save replaces the stored set inside one transaction.
package sqlite
