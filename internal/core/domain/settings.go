package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderHashing is the built-in offline feature-hashing embedder.
	AIProviderHashing AIProvider = "hashing"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini, AIProviderHashing:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderHashing
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderHashing:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the preferred embedding model name.
	Model string

	// FallbackModels are tried in order when Model fails to load.
	FallbackModels []string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI and Gemini).
	APIKey string

	// MaxTokens bounds input length; text is cut at MaxTokens*4 characters.
	MaxTokens int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// Candidates returns the primary model followed by the fallbacks, without duplicates.
func (e EmbeddingSettings) Candidates() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 1+len(e.FallbackModels))
	for _, m := range append([]string{e.Model}, e.FallbackModels...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI, Anthropic and Gemini).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() || l.Provider == AIProviderHashing {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// MatchingSettings holds default match query parameters.
type MatchingSettings struct {
	// TopK is the default number of matches.
	TopK int

	// Threshold is the default minimum similarity.
	Threshold float64
}

// IngestSettings holds upload validation limits.
type IngestSettings struct {
	// MaxFileSize is the largest accepted upload in bytes.
	MaxFileSize int64
}

// IndexSettings holds vector index storage configuration.
type IndexSettings struct {
	// Dir is the directory holding the vector blob and metadata sidecar.
	// Empty means <data dir>/index.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Matching holds match defaults.
	Matching MatchingSettings

	// Ingest holds upload limits.
	Ingest IngestSettings

	// Index holds vector index settings.
	Index IndexSettings
}

// Default setting values.
const (
	DefaultMaxTokens   = 512
	DefaultTopK        = 10
	DefaultThreshold   = 0.7
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultAppSettings returns settings with sensible defaults.
// Embeddings default to the offline hashing provider so the engine works
// without network access; the LLM is left unconfigured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderHashing,
			Model:     DefaultEmbeddingModels()[AIProviderHashing],
			MaxTokens: DefaultMaxTokens,
		},
		LLM: LLMSettings{},
		Matching: MatchingSettings{
			TopK:      DefaultTopK,
			Threshold: DefaultThreshold,
		},
		Ingest: IngestSettings{
			MaxFileSize: DefaultMaxFileSize,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderHashing,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderHashing: "hashing-1024",
		AIProviderOllama:  "mxbai-embed-large",
		AIProviderOpenAI:  "text-embedding-3-small",
		AIProviderGemini:  "text-embedding-004",
	}
}

// DefaultFallbackModels returns the ordered fallback list for each provider.
func DefaultFallbackModels() map[AIProvider][]string {
	return map[AIProvider][]string{
		AIProviderOllama: {"all-minilm", "nomic-embed-text"},
		AIProviderOpenAI: {"text-embedding-3-large", "text-embedding-ada-002"},
		AIProviderGemini: {"gemini-embedding-001"},
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-2.5-flash",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"hashing-1024": 1024,
		"hashing-384":  384,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"text-embedding-004":   768,
		"gemini-embedding-001": 3072,
	}
}
