// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Connector: Lists and reads raw article files
//   - Normaliser: Parses a raw article file into an Article
//   - CorpusStore: Corpus persistence (line-delimited JSON)
//   - EmbeddingService: Generates vector embeddings
//   - VectorStore: Embedding artifact persistence
//   - VectorIndexBuilder / VectorIndex: Approximate nearest neighbour search
//   - ConfigStore: Application configuration
//   - AIConfigValidator: Connectivity checks for embedding providers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
