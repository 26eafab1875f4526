// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/recruitr/internal/adapters/driven/embedding/gemini"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/embedding/generator"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/embedding/hashing"
	ollamaembed "github.com/custodia-labs/recruitr/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/recruitr/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/recruitr/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/recruitr/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/recruitr/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/recruitr/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/logger"
)

const (
	// pingTimeout bounds connectivity checks.
	pingTimeout = 5 * time.Second

	// probeTimeout bounds the first embedding call, which may load the model.
	probeTimeout = 60 * time.Second

	// probeText is embedded once per candidate to discover the output dimension.
	probeText = "test sentence"
)

// ErrEmbeddingsUnsupported is returned for providers without an embedding API.
var ErrEmbeddingsUnsupported = errors.New("provider does not support embeddings")

// embeddingConstructor builds a provider adapter for one model.
type embeddingConstructor func(ctx context.Context, settings *domain.EmbeddingSettings,
	model string, dims int) (driven.EmbeddingService, error)

// embeddingConstructors is the provider dispatch table.
var embeddingConstructors = map[domain.AIProvider]embeddingConstructor{
	domain.AIProviderHashing: func(_ context.Context, _ *domain.EmbeddingSettings, model string, _ int) (driven.EmbeddingService, error) {
		return hashing.NewEmbeddingService(model)
	},
	domain.AIProviderOllama: func(_ context.Context, s *domain.EmbeddingSettings, model string, dims int) (driven.EmbeddingService, error) {
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    s.BaseURL,
			Model:      model,
			Dimensions: dims,
		}), nil
	},
	domain.AIProviderOpenAI: func(_ context.Context, s *domain.EmbeddingSettings, model string, dims int) (driven.EmbeddingService, error) {
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     s.APIKey,
			BaseURL:    s.BaseURL,
			Model:      model,
			Dimensions: dims,
		})
	},
	domain.AIProviderGemini: func(ctx context.Context, s *domain.EmbeddingSettings, model string, dims int) (driven.EmbeddingService, error) {
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     s.APIKey,
			Model:      model,
			Dimensions: dims,
		})
	},
}

// CreateEmbeddingService creates the provider adapter for the primary model.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, nil
	}
	if settings.Provider == domain.AIProviderAnthropic {
		return nil, fmt.Errorf("anthropic: %w, use hashing, ollama, openai or gemini", ErrEmbeddingsUnsupported)
	}
	if !settings.IsConfigured() {
		return nil, nil
	}
	return createEmbedding(ctx, settings, settings.Model, 0)
}

func createEmbedding(ctx context.Context, settings *domain.EmbeddingSettings, model string,
	dims int) (driven.EmbeddingService, error) {
	construct, ok := embeddingConstructors[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
	if dims == 0 {
		dims = domain.EmbeddingDimensions()[model]
	}
	return construct(ctx, settings, model, dims)
}

// LoadEmbeddingService loads the embedding generator, trying the primary
// model and then each fallback model in order. Each attempt is logged. A
// candidate is accepted once it answers a ping and embeds a probe sentence;
// the probe also fixes the vector dimension.
//
// Returns domain.ErrModelUnavailable when every candidate fails.
func LoadEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (*generator.Generator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider not configured", domain.ErrModelUnavailable)
	}

	candidates := settings.Candidates()
	if len(candidates) == 0 {
		candidates = []string{domain.DefaultEmbeddingModels()[settings.Provider]}
	}

	var lastErr error
	for i, model := range candidates {
		logger.Info("loading embedding model %s/%s (attempt %d of %d)", settings.Provider, model, i+1, len(candidates))

		svc, err := loadCandidate(ctx, settings, model)
		if err != nil {
			logger.Warn("embedding model %s unavailable: %v", model, err)
			lastErr = err
			continue
		}

		logger.Info("embedding model %s loaded (%d dimensions)", svc.ModelName(), svc.Dimensions())
		return generator.New(svc, generator.WithMaxTokens(settings.MaxTokens)), nil
	}

	return nil, fmt.Errorf("%w: tried %d model(s): %w", domain.ErrModelUnavailable, len(candidates), lastErr)
}

// loadCandidate creates, pings and probes one model. When the probe reports
// a dimension other than the configured one, the adapter is rebuilt with the
// observed dimension.
func loadCandidate(ctx context.Context, settings *domain.EmbeddingSettings, model string) (driven.EmbeddingService, error) {
	svc, err := createEmbedding(ctx, settings, model, 0)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, err
	}

	probeCtx, cancelProbe := context.WithTimeout(ctx, probeTimeout)
	defer cancelProbe()
	vec, err := svc.Embed(probeCtx, probeText)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("probe embedding: %w", err)
	}
	if len(vec) == 0 {
		svc.Close()
		return nil, errors.New("probe embedding: empty vector")
	}

	if len(vec) != svc.Dimensions() {
		logger.Debug("model %s reports %d dimensions, probe returned %d", model, svc.Dimensions(), len(vec))
		svc.Close()
		return createEmbedding(ctx, settings, model, len(vec))
	}
	return svc, nil
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns nil, nil when no LLM is configured.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'recruitr settings' to fix", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'recruitr settings' to fix",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateEmbeddingConfig creates the configured embedding service and pings it.
func ValidateEmbeddingConfig(ctx context.Context, settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(pingCtx)
}

// ValidateLLMConfig creates the configured LLM service and pings it.
func ValidateLLMConfig(ctx context.Context, settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(pingCtx)
}
