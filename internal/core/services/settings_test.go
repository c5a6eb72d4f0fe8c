package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driven/storage/memory"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("embedding.truncate_dim", 256)
	_ = store.Set("index.ef_search", 200)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 256, settings.Embedding.TruncateDim)
	assert.Equal(t, 200, settings.Index.EfSearch)
	assert.Equal(t, 16, settings.Index.M)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderStatic, settings.Embedding.Provider)
}

func TestSettingsService_Save(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:    domain.AIProviderOpenAI,
			Model:       "text-embedding-3-small",
			APIKey:      "sk-test-key",
			Dimensions:  1536,
			TruncateDim: 512,
			BatchSize:   32,
		},
		Index: domain.IndexSettings{M: 32, EfSearch: 64, Seed: 7},
	}

	require.NoError(t, service.Save(settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, retrieved)
}

func TestSettingsService_Save_EmptyAPIKeyNotStored(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	defaults := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&defaults))

	_, exists := store.Get("embedding.api_key")
	assert.False(t, exists)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.Set("embedding.provider", "ollama"))
	require.NoError(t, service.Set("embedding.batch_size", "16"))
	require.NoError(t, service.Set("index.seed", "0"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, 16, settings.Embedding.BatchSize)
	assert.Equal(t, int64(0), settings.Index.Seed)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	tests := []struct {
		name       string
		key, value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"bad provider", "embedding.provider", "anthropic"},
		{"not an integer", "index.m", "lots"},
		{"negative", "embedding.dimensions", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore(), nil).Keys()

	assert.Len(t, keys, 10)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "embedding.truncate_dim")
	assert.Contains(t, keys, "index.ef_search")
}

func TestSettingsService_Stored(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	assert.Empty(t, service.Stored())

	require.NoError(t, service.Set("index.m", "24"))
	require.NoError(t, service.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("legacy.option", true))

	assert.Equal(t, []string{"embedding.model", "index.m"}, service.Stored())
	assert.Equal(t, []string{"embedding.model", "index.m", "legacy.option"}, store.Keys())
}

func TestSettingsService_SetEmbeddingProvider_Ollama(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOllama, "nomic-embed-text", "")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	assert.Equal(t, 768, settings.Embedding.Dimensions)
}

func TestSettingsService_SetEmbeddingProvider_OpenAIDefaultModel(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-test")
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, 1536, settings.Embedding.Dimensions)
}

func TestSettingsService_SetEmbeddingProvider_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")

	err = service.SetEmbeddingProvider(domain.AIProvider("invalid"), "", "")
	assert.Error(t, err)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	assert.NoError(t, service.Validate())

	_ = store.Set("embedding.truncate_dim", 4096)
	assert.Error(t, service.Validate())

	_ = store.Set("embedding.truncate_dim", 0)
	_ = store.Set("embedding.provider", "openai")
	assert.Error(t, service.Validate(), "openai without an API key")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateEmbeddingConfig(t *testing.T) {
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateEmbeddingConfig())

	validator := &mockAIValidator{err: errMock}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	err := service.ValidateEmbeddingConfig()
	assert.ErrorIs(t, err, errMock)
	require.NotNil(t, validator.called)
	assert.Equal(t, domain.AIProviderStatic, validator.called.Provider)
}
