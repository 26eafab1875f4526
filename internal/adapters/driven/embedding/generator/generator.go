// Package generator wraps an embedding provider with the preprocessing and
// normalisation every stored or queried vector goes through.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/logger"
	"github.com/custodia-labs/recruitr/internal/vectors"
)

// Ensure Generator implements the interface.
var _ driven.EmbeddingService = (*Generator)(nil)

// charsPerToken converts the model token budget into a character budget.
const charsPerToken = 4

// Generator preprocesses text, delegates to a provider, and returns
// unit-length copies of the provider's vectors.
type Generator struct {
	provider  driven.EmbeddingService
	maxTokens int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxTokens sets the model token budget used for truncation.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// New wraps provider.
func New(provider driven.EmbeddingService, opts ...Option) *Generator {
	g := &Generator{provider: provider, maxTokens: domain.DefaultMaxTokens}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Preprocess trims text, collapses whitespace runs to one space, and cuts it
// to maxTokens*4 runes.
func (g *Generator) Preprocess(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	limit := g.maxTokens * charsPerToken
	runes := []rune(text)
	if len(runes) > limit {
		logger.Warn("embedding input truncated from %d to %d characters", len(runes), limit)
		text = strings.TrimSpace(string(runes[:limit]))
	}
	return text
}

// Embed returns the unit-length embedding of text.
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	raw, err := g.provider.Embed(ctx, g.Preprocess(text))
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return g.finish(raw)
}

// EmbedBatch embeds texts in order. Each result equals Embed on the same text.
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	prepared := make([]string, len(texts))
	for i, t := range texts {
		prepared[i] = g.Preprocess(t)
	}

	raw, err := g.provider.EmbedBatch(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(raw) != len(texts) {
		return nil, fmt.Errorf("embed batch: provider returned %d vectors for %d texts", len(raw), len(texts))
	}

	out := make([][]float32, len(raw))
	for i, v := range raw {
		if out[i], err = g.finish(v); err != nil {
			return nil, fmt.Errorf("embed batch item %d: %w", i, err)
		}
	}
	return out, nil
}

func (g *Generator) finish(raw []float32) ([]float32, error) {
	if dim := g.provider.Dimensions(); len(raw) != dim {
		return nil, fmt.Errorf("model %s returned %d values, want %d: %w",
			g.provider.ModelName(), len(raw), dim, domain.ErrDimensionMismatch)
	}
	return vectors.Normalize(raw), nil
}

// Similarity returns the cosine similarity of a and b clamped to [0, 1].
func (g *Generator) Similarity(a, b []float32) float64 {
	return vectors.Similarity(a, b)
}

// Dimensions returns the provider's vector size.
func (g *Generator) Dimensions() int {
	return g.provider.Dimensions()
}

// ModelName returns the provider's model name.
func (g *Generator) ModelName() string {
	return g.provider.ModelName()
}

// Ping checks the provider.
func (g *Generator) Ping(ctx context.Context) error {
	return g.provider.Ping(ctx)
}

// Close releases the provider.
func (g *Generator) Close() error {
	return g.provider.Close()
}
