// Package config reads the pipeline locations from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the shell take precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingRequired is returned when a location is set to an empty value.
var ErrMissingRequired = errors.New("missing required configuration")

// Config holds the file locations used by the CLI commands.
type Config struct {
	// CorpusDir is the root of the raw livedoor text files.
	CorpusDir string `envconfig:"CORPUS_DIR" default:"corpus"`

	// CorpusJSON is the line-delimited JSON corpus written by ingest.
	CorpusJSON string `envconfig:"LIVEDOOR_JSON" default:"livedoor.json"`

	// VectorsDB is the SQLite file holding the embedding vectors.
	VectorsDB string `envconfig:"VECTORS_DB" default:"vectors-livedoor-static.db"`

	// IndexPath is where a built HNSW graph is cached. Empty disables caching.
	IndexPath string `envconfig:"LIVEDOOR_INDEX"`

	// ConfigDir holds config.toml. Empty means ~/.livedoor.
	ConfigDir string `envconfig:"LIVEDOOR_CONFIG_DIR"`
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every required location is set.
func (c *Config) Validate() error {
	if c.CorpusDir == "" {
		return fmt.Errorf("%w: CORPUS_DIR", ErrMissingRequired)
	}
	if c.CorpusJSON == "" {
		return fmt.Errorf("%w: LIVEDOOR_JSON", ErrMissingRequired)
	}
	if c.VectorsDB == "" {
		return fmt.Errorf("%w: VECTORS_DB", ErrMissingRequired)
	}
	return nil
}
