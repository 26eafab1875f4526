// Package openai provides an LLM service adapter using the official OpenAI SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the OpenAI LLM service.
type LLMConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API endpoint for Azure OpenAI or compatible servers.
	BaseURL string

	// Model is the LLM model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// completer is the subset of the SDK chat completion service the adapter uses.
type completer interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams,
		opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// LLMService generates text with the OpenAI chat completions API.
type LLMService struct {
	completions completer
	ping        func(ctx context.Context) error
	model       string
}

// NewLLMService creates a new OpenAI LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	model := cfg.Model

	return &LLMService{
		completions: &client.Chat.Completions,
		ping: func(ctx context.Context) error {
			_, err := client.Models.Get(ctx, model)
			return err
		},
		model: model,
	}, nil
}

// Generate sends prompt as a single user message. Stop words are not sent.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	resp, err := s.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the key by fetching the configured model.
func (s *LLMService) Ping(ctx context.Context) error {
	if err := s.ping(ctx); err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
