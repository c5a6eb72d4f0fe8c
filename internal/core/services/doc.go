// Package services implements the driving port interfaces.
// Services contain the pipeline logic and orchestrate calls to driven
// ports (adapters): corpus loading, embedding, similarity ranking and
// settings management.
//
// Services are pure Go with no CGO or external dependencies. The exact
// similarity functions (CosineSimilarity, SimilarityMatrix,
// TopSimilarPairs) are usable without a service value.
package services
