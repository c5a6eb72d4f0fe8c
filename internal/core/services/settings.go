package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedDimensions  = "embedding.dimensions"
	keyEmbedTruncateDim = "embedding.truncate_dim"
	keyEmbedBatchSize   = "embedding.batch_size"
	keyIndexM           = "index.m"
	keyIndexEfSearch    = "index.ef_search"
	keyIndexSeed        = "index.seed"
)

// intKeys are the settings stored as integers.
var intKeys = map[string]bool{
	keyEmbedDimensions:  true,
	keyEmbedTruncateDim: true,
	keyEmbedBatchSize:   true,
	keyIndexM:           true,
	keyIndexEfSearch:    true,
	keyIndexSeed:        true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:    s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:       s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:     s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:      s.configStore.GetString(keyEmbedAPIKey),
			Dimensions:  s.getInt(keyEmbedDimensions, defaults.Embedding.Dimensions),
			TruncateDim: s.configStore.GetInt(keyEmbedTruncateDim),
			BatchSize:   s.getInt(keyEmbedBatchSize, defaults.Embedding.BatchSize),
		},
		Index: domain.IndexSettings{
			M:        s.getInt(keyIndexM, defaults.Index.M),
			EfSearch: s.getInt(keyIndexEfSearch, defaults.Index.EfSearch),
			Seed:     s.getSeed(defaults.Index.Seed),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedDimensions, settings.Embedding.Dimensions); err != nil {
		return fmt.Errorf("save embedding dimensions: %w", err)
	}
	if err := s.configStore.Set(keyEmbedTruncateDim, settings.Embedding.TruncateDim); err != nil {
		return fmt.Errorf("save embedding truncate_dim: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBatchSize, settings.Embedding.BatchSize); err != nil {
		return fmt.Errorf("save embedding batch_size: %w", err)
	}

	// Save index settings
	if err := s.configStore.Set(keyIndexM, settings.Index.M); err != nil {
		return fmt.Errorf("save index m: %w", err)
	}
	if err := s.configStore.Set(keyIndexEfSearch, settings.Index.EfSearch); err != nil {
		return fmt.Errorf("save index ef_search: %w", err)
	}
	if err := s.configStore.Set(keyIndexSeed, int(settings.Index.Seed)); err != nil {
		return fmt.Errorf("save index seed: %w", err)
	}

	return nil
}

// Set updates a single setting by its dotted key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if intKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		if n < 0 && key != keyIndexSeed {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	}

	if key == keyEmbedProvider && !domain.AIProvider(value).IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, value)
	}
	return s.configStore.Set(key, value)
}

// Keys returns the settable keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyEmbedProvider,
		keyEmbedModel,
		keyEmbedBaseURL,
		keyEmbedAPIKey,
		keyEmbedDimensions,
		keyEmbedTruncateDim,
		keyEmbedBatchSize,
		keyIndexM,
		keyIndexEfSearch,
		keyIndexSeed,
	}
	sort.Strings(keys)
	return keys
}

// Stored returns the known settings that carry an explicit value in the
// config store, sorted. Keys not listed here fall back to their defaults.
func (s *SettingsService) Stored() []string {
	var keys []string
	for _, key := range s.configStore.Keys() {
		if isKnownKey(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Only Ollama talks to a local server
	if provider == domain.AIProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	// Update vector dimensions based on model
	dims := domain.EmbeddingDimensions()
	if d, ok := dims[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = d
	}

	return s.Save(settings)
}

// Validate checks that the current settings can drive the pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %q is not configured", settings.Embedding.Provider)
	}
	if settings.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", settings.Embedding.Dimensions)
	}
	if settings.Embedding.TruncateDim > settings.Embedding.Dimensions {
		return fmt.Errorf("truncate_dim %d exceeds model dimensions %d",
			settings.Embedding.TruncateDim, settings.Embedding.Dimensions)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getSeed distinguishes an explicit zero seed from an unset one.
func (s *SettingsService) getSeed(defaultVal int64) int64 {
	if _, exists := s.configStore.Get(keyIndexSeed); !exists {
		return defaultVal
	}
	return int64(s.configStore.GetInt(keyIndexSeed))
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func isKnownKey(key string) bool {
	switch key {
	case keyEmbedProvider, keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey:
		return true
	default:
		return intKeys[key]
	}
}
