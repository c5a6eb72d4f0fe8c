package domain

import "errors"

// Domain errors represent pipeline failures.
// Callers wrap them with context and test with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured
	// or cannot be reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Pipeline Errors.

	// ErrMalformedRecord indicates a raw article file could not be parsed.
	// The loader recovers from it by skipping the file.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDuplicateRecord indicates an article identical in every field to
	// one already loaded. The loader skips it like a malformed file.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrIO indicates a missing or unreadable corpus, vector or index file.
	ErrIO = errors.New("io error")

	// ErrDecode indicates a corpus line that is not a single JSON object.
	ErrDecode = errors.New("decode error")

	// ErrDimensionMismatch indicates vectors, model and index disagree on
	// the vector length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegenerateVector indicates a zero-norm vector where cosine
	// similarity is undefined.
	ErrDegenerateVector = errors.New("degenerate vector")
)
