package driven

import "github.com/custodia-labs/recruitr/internal/core/domain"

// AIConfigValidator validates AI provider configurations by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding configuration by pinging the provider.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if the LLM is not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
