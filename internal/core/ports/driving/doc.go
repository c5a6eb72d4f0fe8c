// Package driving defines the ports the CLI calls: corpus ingestion, the
// embedding pipeline, similarity queries and settings.
//
// Implementations live in internal/core/services.
package driving
