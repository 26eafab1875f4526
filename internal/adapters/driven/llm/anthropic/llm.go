// Package anthropic provides an LLM service adapter using the official Anthropic SDK.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024
)

// Config holds configuration for the Anthropic LLM service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// Model is the LLM model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// messenger is the subset of the SDK message service the adapter uses.
type messenger interface {
	New(ctx context.Context, body anthropic.MessageNewParams,
		opts ...option.RequestOption) (*anthropic.Message, error)
}

// LLMService generates text with the Anthropic messages API.
type LLMService struct {
	messages messenger
	ping     func(ctx context.Context) error
	model    string
}

// NewLLMService creates a new Anthropic LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &LLMService{
		messages: &client.Messages,
		ping: func(ctx context.Context) error {
			_, err := client.Models.List(ctx, anthropic.ModelListParams{})
			return err
		},
		model: cfg.Model,
	}, nil
}

// Generate sends prompt as a single user message and joins the text blocks
// of the reply.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	maxTokens := int64(DefaultMaxTokens)
	if opts.MaxTokens > 0 {
		maxTokens = int64(opts.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		StopSequences: opts.StopWords,
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	resp, err := s.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: send message: %w", err)
	}
	if resp == nil {
		return "", errors.New("anthropic: empty response")
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the key by listing models.
func (s *LLMService) Ping(ctx context.Context) error {
	if err := s.ping(ctx); err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
