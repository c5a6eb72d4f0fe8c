package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllEmbeddingProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("anthropic").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("nope").Description())
}

func TestAIProvider_Properties(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderStatic.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())

	assert.True(t, AIProviderStatic.IsLocal())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())
	assert.Equal(t, "static", AIProviderStatic.String())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		want     bool
	}{
		{"static", EmbeddingSettings{Provider: AIProviderStatic}, true},
		{"ollama", EmbeddingSettings{Provider: AIProviderOllama}, true},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, true},
		{"empty", EmbeddingSettings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestEmbeddingSettings_OutputDimensions(t *testing.T) {
	assert.Equal(t, 1024, EmbeddingSettings{Dimensions: 1024}.OutputDimensions())
	assert.Equal(t, 256, EmbeddingSettings{Dimensions: 1024, TruncateDim: 256}.OutputDimensions())
	assert.Equal(t, 1024, EmbeddingSettings{Dimensions: 1024, TruncateDim: 2048}.OutputDimensions())
	assert.Equal(t, 128, EmbeddingSettings{TruncateDim: 128}.OutputDimensions())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderStatic, s.Embedding.Provider)
	assert.Equal(t, "static-ngram-ja", s.Embedding.Model)
	assert.Equal(t, 1024, s.Embedding.Dimensions)
	assert.Equal(t, 64, s.Embedding.BatchSize)
	assert.True(t, s.Embedding.IsConfigured())
	assert.Equal(t, 16, s.Index.M)
	assert.Equal(t, 100, s.Index.EfSearch)
}

func TestEmbeddingDimensions_DefaultModelsKnown(t *testing.T) {
	dims := EmbeddingDimensions()
	for p, model := range DefaultEmbeddingModels() {
		assert.NotZero(t, dims[model], "default model for %s has no known dimension", p)
	}
}
