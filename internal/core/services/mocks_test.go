package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/recruitr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return m.err }

func (m *mockLLMService) Close() error { return nil }

func (m *mockLLMService) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	templates map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	t, ok := m.templates[name]
	if !ok {
		return "", errors.New("prompt not found")
	}
	return t, nil
}

func (m *mockPromptStore) Reload() {}

func newPromptStore() *mockPromptStore {
	return &mockPromptStore{templates: map[string]string{
		driven.PromptMatchExplanation: "JOB=%s|RESUME=%s|SCORE=%.2f%s",
		driven.PromptJobAnalysis:      "ANALYSE=%s",
	}}
}

// failingRecordStore is a memory record store whose writes can fail.
type failingRecordStore struct {
	*memory.RecordStore
	saveErr  error
	clearErr error
}

func (f *failingRecordStore) SaveBatch(ctx context.Context, records []*domain.StructuredRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.RecordStore.SaveBatch(ctx, records)
}

func (f *failingRecordStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.RecordStore.Clear(ctx)
}

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embeddingErr error
	llmErr       error
	gotEmbedding *domain.EmbeddingSettings
	gotLLM       *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	m.gotEmbedding = config
	return m.embeddingErr
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.gotLLM = config
	return m.llmErr
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	pingErr   error
	dims      int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.embedding
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return m.dims }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return m.pingErr }

func (m *mockEmbeddingService) Close() error { return nil }
