package ai

import (
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator pings embedding providers on behalf of the settings service.
type ConfigValidator struct{}

// NewConfigValidator returns a ConfigValidator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding creates the provider client and pings it once.
func (v *ConfigValidator) ValidateEmbedding(settings *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(settings)
}
