package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// fakeEmbedding is a scripted provider for fallback tests.
type fakeEmbedding struct {
	model   string
	dims    int
	outDims int
	pingErr error
	embErr  error
	closed  bool
}

func (f *fakeEmbedding) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.embErr != nil {
		return nil, f.embErr
	}
	out := make([]float32, f.outDims)
	if len(out) > 0 {
		out[0] = 1
	}
	return out, nil
}

func (f *fakeEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedding) Dimensions() int            { return f.dims }
func (f *fakeEmbedding) ModelName() string          { return f.model }
func (f *fakeEmbedding) Ping(context.Context) error { return f.pingErr }
func (f *fakeEmbedding) Close() error {
	f.closed = true
	return nil
}

// withFakeProvider swaps the ollama constructor for the duration of a test.
// The script maps model names to the fake returned for them; the dims
// argument received by the constructor is recorded per model.
func withFakeProvider(t *testing.T, script map[string]*fakeEmbedding) map[string][]int {
	t.Helper()

	calls := make(map[string][]int)
	original := embeddingConstructors[domain.AIProviderOllama]
	embeddingConstructors[domain.AIProviderOllama] = func(_ context.Context, _ *domain.EmbeddingSettings,
		model string, dims int) (driven.EmbeddingService, error) {
		calls[model] = append(calls[model], dims)
		f, ok := script[model]
		if !ok {
			return nil, errors.New("model not found: " + model)
		}
		if dims != 0 {
			f.dims = dims
		}
		return f, nil
	}
	t.Cleanup(func() { embeddingConstructors[domain.AIProviderOllama] = original })
	return calls
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantNil     bool
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name: "hashing provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderHashing,
				Model:    "hashing-384",
			},
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "gemini provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
				Model:    "text-embedding-004",
			},
		},
		{
			name: "openai without key is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-small",
			},
			wantNil: true,
		},
		{
			name: "anthropic provider returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantNil:     true,
			wantErr:     true,
			errContains: "anthropic: provider does not support embeddings",
		},
		{
			name: "bad hashing model returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderHashing,
				Model:    "hashing-abc",
			},
			wantNil: true,
			wantErr: true,
		},
		{
			name: "unknown provider returns nil (not configured)",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(context.Background(), tt.settings)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.settings.Model, svc.ModelName())
			_ = svc.Close()
		})
	}
}

func TestCreateEmbeddingService_KnownDimensions(t *testing.T) {
	svc, err := CreateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "all-minilm",
	})
	require.NoError(t, err)
	assert.Equal(t, 384, svc.Dimensions())
}

func TestLoadEmbeddingService_Hashing(t *testing.T) {
	gen, err := LoadEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider:  domain.AIProviderHashing,
		Model:     "hashing-384",
		MaxTokens: 16,
	})
	require.NoError(t, err)
	require.NotNil(t, gen)

	assert.Equal(t, "hashing-384", gen.ModelName())
	assert.Equal(t, 384, gen.Dimensions())

	vec, err := gen.Embed(context.Background(), "Go engineer with Kubernetes")
	require.NoError(t, err)
	assert.Len(t, vec, 384)
}

func TestLoadEmbeddingService_FallsBackInOrder(t *testing.T) {
	primary := &fakeEmbedding{model: "primary", dims: 8, outDims: 8, pingErr: errors.New("connection refused")}
	second := &fakeEmbedding{model: "second", dims: 8, outDims: 8, embErr: errors.New("model loading")}
	third := &fakeEmbedding{model: "third", dims: 4, outDims: 4}
	calls := withFakeProvider(t, map[string]*fakeEmbedding{
		"primary": primary,
		"second":  second,
		"third":   third,
	})

	gen, err := LoadEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider:       domain.AIProviderOllama,
		Model:          "primary",
		FallbackModels: []string{"second", "third"},
	})
	require.NoError(t, err)

	assert.Equal(t, "third", gen.ModelName())
	assert.True(t, primary.closed)
	assert.True(t, second.closed)
	assert.False(t, third.closed)
	assert.Len(t, calls, 3)
}

func TestLoadEmbeddingService_ProbeFixesDimension(t *testing.T) {
	f := &fakeEmbedding{model: "custom", dims: 0, outDims: 12}
	calls := withFakeProvider(t, map[string]*fakeEmbedding{"custom": f})

	gen, err := LoadEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "custom",
	})
	require.NoError(t, err)

	assert.Equal(t, 12, gen.Dimensions())
	assert.Equal(t, []int{0, 12}, calls["custom"])
}

func TestLoadEmbeddingService_AllFail(t *testing.T) {
	withFakeProvider(t, map[string]*fakeEmbedding{
		"a": {model: "a", dims: 4, outDims: 4, pingErr: errors.New("down")},
	})

	gen, err := LoadEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider:       domain.AIProviderOllama,
		Model:          "a",
		FallbackModels: []string{"missing"},
	})

	assert.Nil(t, gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "tried 2 model(s)")
	assert.Contains(t, err.Error(), "model not found: missing")
}

func TestLoadEmbeddingService_NotConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
	}{
		{"nil settings", nil},
		{"empty settings", &domain.EmbeddingSettings{}},
		{"anthropic", &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEmbeddingService(context.Background(), tt.settings)
			assert.ErrorIs(t, err, domain.ErrModelUnavailable)
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name: "hashing is not an LLM",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderHashing,
			},
			wantNil: true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
			wantModel: "llama3.2",
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			wantModel: "gpt-4o-mini",
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
				Model:    "claude-3-5-sonnet-latest",
			},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name: "gemini provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
				Model:    "gemini-2.5-flash",
			},
			wantModel: "gemini-2.5-flash",
		},
		{
			name: "anthropic without key is not configured",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(context.Background(), tt.settings)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			_ = svc.Close()
		})
	}
}

func TestCreateAndValidateLLMService_NotConfigured(t *testing.T) {
	svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{})
	assert.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
		Model:    "llama3.2",
	})

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.True(t, strings.Contains(err.Error(), "recruitr settings"))
}

func TestValidateEmbeddingConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantErr  bool
	}{
		{"nil settings", nil, false},
		{"unconfigured", &domain.EmbeddingSettings{}, false},
		{"hashing always reachable", &domain.EmbeddingSettings{Provider: domain.AIProviderHashing, Model: "hashing-1024"}, false},
		{"anthropic rejected", &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"}, true},
		{"ollama unreachable", &domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://127.0.0.1:1",
			Model:    "all-minilm",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbeddingConfig(context.Background(), tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantErr  bool
	}{
		{"nil settings", nil, false},
		{"unconfigured", &domain.LLMSettings{}, false},
		{"ollama unreachable", &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://127.0.0.1:1",
			Model:    "llama3.2",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLLMConfig(context.Background(), tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
