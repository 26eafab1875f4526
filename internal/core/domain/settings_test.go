package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests all valid and invalid providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"gemini is valid", AIProviderGemini, true},
		{"hashing is valid", AIProviderHashing, true},
		{"empty is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("cohere"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestAIProvider_RequiresAPIKey tests API key requirements per provider
func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.False(t, AIProviderHashing.RequiresAPIKey())
}

// TestAIProvider_Description tests human-readable descriptions
func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Google Gemini (cloud)", AIProviderGemini.Description())
	assert.Equal(t, "Feature hashing (offline)", AIProviderHashing.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

// TestEmbeddingSettings_IsConfigured tests embedding configuration checks
func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{"hashing needs nothing", EmbeddingSettings{Provider: AIProviderHashing}, true},
		{"ollama needs no key", EmbeddingSettings{Provider: AIProviderOllama}, true},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "k"}, true},
		{"gemini with key", EmbeddingSettings{Provider: AIProviderGemini, APIKey: "k"}, true},
		{"anthropic has no embeddings", EmbeddingSettings{Provider: AIProviderAnthropic, APIKey: "k"}, false},
		{"empty provider", EmbeddingSettings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestEmbeddingSettings_Candidates tests primary-then-fallback ordering
func TestEmbeddingSettings_Candidates(t *testing.T) {
	s := EmbeddingSettings{
		Model:          "a",
		FallbackModels: []string{"b", "a", "", "c"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.Candidates())

	empty := EmbeddingSettings{}
	assert.Empty(t, empty.Candidates())
}

// TestLLMSettings_IsConfigured tests LLM configuration checks
func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderGemini}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderGemini, APIKey: "k"}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderHashing}.IsConfigured())
}

// TestDefaultAppSettings tests defaults
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderHashing, s.Embedding.Provider)
	assert.Equal(t, "hashing-1024", s.Embedding.Model)
	assert.Equal(t, 512, s.Embedding.MaxTokens)
	assert.True(t, s.Embedding.IsConfigured())
	assert.False(t, s.LLM.IsConfigured())
	assert.Equal(t, 10, s.Matching.TopK)
	assert.InDelta(t, 0.7, s.Matching.Threshold, 1e-9)
	assert.Equal(t, int64(10*1024*1024), s.Ingest.MaxFileSize)
	assert.Empty(t, s.Index.Dir)
}

// TestDefaultEmbeddingModels_HaveDimensions tests every default model has a known dimension
func TestDefaultEmbeddingModels_HaveDimensions(t *testing.T) {
	dims := EmbeddingDimensions()
	for provider, model := range DefaultEmbeddingModels() {
		d, ok := dims[model]
		require.True(t, ok, "no dimension for %s default %s", provider, model)
		assert.Positive(t, d)
	}
}

// TestProviderLists tests provider list contents
func TestProviderLists(t *testing.T) {
	assert.NotContains(t, AllEmbeddingProviders(), AIProviderAnthropic)
	assert.NotContains(t, AllLLMProviders(), AIProviderHashing)
	for _, p := range AllLLMProviders() {
		_, ok := DefaultLLMModels()[p]
		assert.True(t, ok, "missing default LLM model for %s", p)
	}
}
