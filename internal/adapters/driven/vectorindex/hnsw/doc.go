// Package hnsw implements driven.VectorIndex on top of github.com/coder/hnsw,
// a pure Go Hierarchical Navigable Small World graph.
//
// Graph keys are corpus positions. Two query forms are offered:
// SearchSimilar scans every stored vector and ranks by exact cosine
// similarity, SearchNearest walks the graph and ranks by cosine distance.
// The graph is approximate, so the two can disagree on large inputs.
//
// A built graph can be written to a file and reloaded. The file starts
// with a fingerprint of the vector set and index parameters; a mismatch
// on load yields ErrStaleIndex and the caller rebuilds.
package hnsw
