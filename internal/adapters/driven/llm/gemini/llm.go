// Package gemini provides an LLM service adapter using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models the service uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model name (default: gemini-2.5-flash).
	Model string
}

// LLMService generates text with the Gemini API.
type LLMService struct {
	models contentGenerator
	model  string
}

// NewLLMService creates a Gemini LLM service on the Gemini API backend.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
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

	return newWithClient(client.Models, cfg.Model), nil
}

func newWithClient(models contentGenerator, model string) *LLMService {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &LLMService{models: models, model: model}
}

// Generate sends the prompt and returns the text parts of all candidates,
// one per line.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini: prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		cfg.Temperature = &t
	}
	if len(opts.StopWords) > 0 {
		cfg.StopSequences = opts.StopWords
	}

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := builder.String()
	if output == "" {
		return "", errors.New("gemini: empty response")
	}
	return output, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches the model metadata to check the key and model name.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
