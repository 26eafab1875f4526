package services

import (
	"fmt"
	"os"
	"slices"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedFallbacks = "embedding.fallback_models"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedMaxTokens = "embedding.max_tokens"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyMatchTopK      = "matching.top_k"
	keyMatchThreshold = "matching.threshold"
	keyIngestMaxSize  = "ingest.max_file_size"
	keyIndexDir       = "index.dir"
)

// defaultOllamaURL is used when a local provider has no base URL.
const defaultOllamaURL = "http://localhost:11434"

// apiKeyEnv names the environment variable that supplies a provider's API
// key when none is configured.
var apiKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderGemini:    "GEMINI_API_KEY",
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings. API keys missing from the
// config are read from the provider's environment variable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(keyEmbedProvider, defaults.Embedding.Provider)
	embedModel := defaults.Embedding.Model
	if embedProvider != defaults.Embedding.Provider {
		embedModel = domain.DefaultEmbeddingModels()[embedProvider]
	}

	fallbacks := s.configStore.GetStringSlice(keyEmbedFallbacks)
	if _, exists := s.configStore.Get(keyEmbedFallbacks); !exists {
		fallbacks = domain.DefaultFallbackModels()[embedProvider]
	}

	llmProvider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:       embedProvider,
			Model:          s.getString(keyEmbedModel, embedModel),
			FallbackModels: fallbacks,
			BaseURL:        s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:         s.apiKey(keyEmbedAPIKey, embedProvider),
			MaxTokens:      s.getInt(keyEmbedMaxTokens, defaults.Embedding.MaxTokens),
		},
		LLM: domain.LLMSettings{
			Provider: llmProvider,
			Model:    s.getString(keyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.apiKey(keyLLMAPIKey, llmProvider),
		},
		Matching: domain.MatchingSettings{
			TopK:      s.getInt(keyMatchTopK, defaults.Matching.TopK),
			Threshold: s.getFloat(keyMatchThreshold, defaults.Matching.Threshold),
		},
		Ingest: domain.IngestSettings{
			MaxFileSize: int64(s.getInt(keyIngestMaxSize, int(defaults.Ingest.MaxFileSize))),
		},
		Index: domain.IndexSettings{
			Dir: s.configStore.GetString(keyIndexDir),
		},
	}

	return settings, nil
}

// Save persists application settings. Empty API keys are not written, so
// keys supplied through the environment never reach the config file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedFallbacks, settings.Embedding.FallbackModels},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedMaxTokens, settings.Embedding.MaxTokens},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyMatchTopK, settings.Matching.TopK},
		{keyMatchThreshold, settings.Matching.Threshold},
		{keyIngestMaxSize, settings.Ingest.MaxFileSize},
		{keyIndexDir, settings.Index.Dir},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Embedding.APIKey != "" && settings.Embedding.APIKey != s.envKey(settings.Embedding.Provider) {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider. Changing provider
// resets the fallback list to the provider's defaults.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s (or set %s)", domain.ErrInvalidInput, provider, apiKeyEnv[provider])
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}
	settings.Embedding.FallbackModels = domain.DefaultFallbackModels()[provider]
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}
	if !slices.Contains(domain.AllLLMProviders(), provider) {
		return fmt.Errorf("%w: provider %s does not support text generation", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s (or set %s)", domain.ErrInvalidInput, provider, apiKeyEnv[provider])
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetMatching updates the default match parameters.
func (s *SettingsService) SetMatching(topK int, threshold float64) error {
	if topK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidInput)
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold must be within [0, 1]", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Matching = domain.MatchingSettings{TopK: topK, Threshold: threshold}
	return s.Save(settings)
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

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// baseURLFor keeps or defaults the URL for local providers and clears it for cloud ones.
func baseURLFor(provider domain.AIProvider, current string) string {
	if provider != domain.AIProviderOllama {
		return ""
	}
	if current == "" {
		return defaultOllamaURL
	}
	return current
}

// Helper methods for reading config with defaults.

func (s *SettingsService) apiKey(key string, provider domain.AIProvider) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return s.envKey(provider)
}

func (s *SettingsService) envKey(provider domain.AIProvider) string {
	name, ok := apiKeyEnv[provider]
	if !ok {
		return ""
	}
	return s.getenv(name)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
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
