package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/ai"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/config/file"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/corpus/jsonl"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/storage/sqlite"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/vectorindex/hnsw"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driving/cli"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/config"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/connectors/filesystem"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/services"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/normalisers/livedoor"
)

var _ cli.Runtime = (*runtime)(nil)

// runtime wires the production adapters. Vector stores are opened lazily
// and shared per path.
type runtime struct {
	settings *services.SettingsService

	mu        sync.Mutex
	stores    map[string]*sqlite.Store
	embedders []driven.EmbeddingService
}

func newRuntime(cfg *config.Config) (*runtime, error) {
	store, err := file.NewConfigStore(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	return &runtime{
		settings: services.NewSettingsService(store, ai.NewConfigValidator()),
		stores:   make(map[string]*sqlite.Store),
	}, nil
}

func (r *runtime) Corpus() driving.CorpusService {
	return services.NewCorpusService(filesystem.NewFactory(""), livedoor.New(), jsonl.NewStore())
}

func (r *runtime) Embedding(vectorsPath string) (driving.EmbeddingPipeline, error) {
	if err := r.settings.Validate(); err != nil {
		return nil, err
	}
	settings, err := r.settings.Get()
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, err
	}
	logger.Debug("Embedding with %s (%s)", settings.Embedding.Provider, embedder.ModelName())

	store, err := r.store(vectorsPath)
	if err != nil {
		_ = embedder.Close()
		return nil, err
	}

	r.mu.Lock()
	r.embedders = append(r.embedders, embedder)
	r.mu.Unlock()

	return services.NewEmbeddingPipeline(embedder, jsonl.NewStore(), store, services.EmbeddingConfig{
		BatchSize:   settings.Embedding.BatchSize,
		TruncateDim: settings.Embedding.TruncateDim,
	}), nil
}

func (r *runtime) Similarity(vectorsPath, indexPath string) (driving.SimilarityService, error) {
	settings, err := r.settings.Get()
	if err != nil {
		return nil, err
	}
	store, err := r.store(vectorsPath)
	if err != nil {
		return nil, err
	}

	builder := hnsw.NewBuilder(hnsw.Config{
		M:        settings.Index.M,
		EfSearch: settings.Index.EfSearch,
		Seed:     settings.Index.Seed,
	}, indexPath)
	return services.NewSimilarityService(store, builder), nil
}

func (r *runtime) Settings() driving.SettingsService {
	return r.settings
}

// Close closes every store and embedder opened so far.
func (r *runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for path, s := range r.stores {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
	}
	for _, e := range r.embedders {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.stores = make(map[string]*sqlite.Store)
	r.embedders = nil
	return errors.Join(errs...)
}

func (r *runtime) store(path string) (*sqlite.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[path]; ok {
		return s, nil
	}
	s, err := sqlite.NewStore(path)
	if err != nil {
		return nil, err
	}
	r.stores[path] = s
	return s, nil
}
