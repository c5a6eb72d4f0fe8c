// Package cli is the cobra command tree of the livedoor tool.
//
// Commands reach the core through the Runtime set by main. File locations
// default to the environment configuration and can be overridden per
// command with flags.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// Runtime opens the services a command needs.
type Runtime interface {
	// Corpus returns the corpus service.
	Corpus() driving.CorpusService

	// Embedding returns a pipeline that saves vectors to vectorsPath.
	Embedding(vectorsPath string) (driving.EmbeddingPipeline, error)

	// Similarity returns a service over the vectors in vectorsPath.
	// A non-empty indexPath caches the HNSW graph there.
	Similarity(vectorsPath, indexPath string) (driving.SimilarityService, error)

	// Settings returns the settings service.
	Settings() driving.SettingsService

	// Close releases every resource opened by the runtime.
	Close() error
}

// Paths are the default file locations.
type Paths struct {
	// CorpusDir is the root of the raw article files.
	CorpusDir string

	// CorpusJSON is the line-delimited JSON corpus.
	CorpusJSON string

	// VectorsDB is the SQLite vector file.
	VectorsDB string

	// IndexPath caches the HNSW graph. Empty disables caching.
	IndexPath string
}

var (
	appRuntime Runtime
	paths      = Paths{
		CorpusDir:  "corpus",
		CorpusJSON: "livedoor.json",
		VectorsDB:  "vectors-livedoor-static.db",
	}
)

var rootCmd = &cobra.Command{
	Use:   "livedoor",
	Short: "Embed the livedoor news corpus and rank similar articles",
	Long: `livedoor turns the livedoor news corpus into a line-delimited JSON file,
embeds every article body and ranks articles by cosine similarity.

Typical flow:
  livedoor ingest     parse the raw files into livedoor.json
  livedoor embed      embed the bodies into a SQLite vector file
  livedoor pairs      print the most similar article pairs
  livedoor neighbors  query the HNSW index for one article
  livedoor query      search the index with free text`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetRuntime sets the runtime used by every command.
func SetRuntime(rt Runtime) {
	appRuntime = rt
}

// SetPaths sets the default file locations.
func SetPaths(p Paths) {
	paths = p
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands between files or batches.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func requireRuntime() (Runtime, error) {
	if appRuntime == nil {
		return nil, errors.New("runtime not configured")
	}
	return appRuntime, nil
}

// pathOr returns value unless it is empty.
func pathOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
