// Package gemini provides an embedding service adapter using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "text-embedding-004"
	DefaultDimensions = 768
)

// modelClient is the subset of *genai.Models the service uses.
type modelClient interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the embedding model (default: text-embedding-004).
	Model string

	// Dimensions requests a reduced output size when non-zero.
	Dimensions int
}

// EmbeddingService generates embeddings with the Gemini API.
type EmbeddingService struct {
	models     modelClient
	model      string
	dimensions int
}

// NewEmbeddingService creates a Gemini embedding service on the Gemini API backend.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return newWithClient(client.Models, cfg), nil
}

func newWithClient(models modelClient, cfg Config) *EmbeddingService {
	if cfg.Model = strings.TrimSpace(cfg.Model); cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{models: models, model: cfg.Model, dimensions: cfg.Dimensions}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch embeds all texts in one EmbedContent call, one content per text.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	dims := int32(s.dimensions)
	cfg := &genai.EmbedContentConfig{
		TaskType:             "SEMANTIC_SIMILARITY",
		OutputDimensionality: &dims,
	}

	resp, err := s.models.EmbedContent(ctx, s.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini: got %d embeddings for %d inputs", got, len(texts))
	}

	out := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini: empty embedding for input %d", i)
		}
		out[i] = append([]float32(nil), e.Values...)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks the key and model name by fetching the model metadata.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
