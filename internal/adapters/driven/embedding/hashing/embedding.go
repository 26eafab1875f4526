// Package hashing provides an offline embedding service based on signed
// feature hashing of word unigrams and bigrams.
//
// Vectors are deterministic for a given model name and text, so the service
// needs no model download or network access.
package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "hashing-1024"
	DefaultDimensions = 1024
	modelPrefix       = "hashing-"
)

// EmbeddingService embeds text by hashing features into a fixed-size vector.
type EmbeddingService struct {
	model      string
	dimensions int
}

// NewEmbeddingService creates a hashing embedder. The dimension is read from
// a model name of the form "hashing-<dim>".
func NewEmbeddingService(model string) (*EmbeddingService, error) {
	if model == "" {
		model = DefaultModel
	}
	dims, err := ParseDimensions(model)
	if err != nil {
		return nil, err
	}
	return &EmbeddingService{model: model, dimensions: dims}, nil
}

// ParseDimensions extracts the dimension from a "hashing-<dim>" model name.
func ParseDimensions(model string) (int, error) {
	if !strings.HasPrefix(model, modelPrefix) {
		return 0, fmt.Errorf("hashing: unknown model %q (want %s<dim>)", model, modelPrefix)
	}
	dims, err := strconv.Atoi(strings.TrimPrefix(model, modelPrefix))
	if err != nil || dims < 8 || dims > 8192 {
		return 0, fmt.Errorf("hashing: invalid dimension in model %q", model)
	}
	return dims, nil
}

// Embed returns the hashed feature vector for text. The vector is never all
// zero: text without tokens hashes a single empty-text feature.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, s.dimensions)
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		s.add(vec, "", 1)
		return vec, nil
	}

	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}
	for feature, n := range counts {
		// Sublinear term frequency keeps repeated words from dominating.
		s.add(vec, feature, float32(1+math.Log(float64(n))))
	}
	return vec, nil
}

// add hashes feature into one bucket with a hash-derived sign.
func (s *EmbeddingService) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	h.Write([]byte(s.model))
	h.Write([]byte{0})
	h.Write([]byte(feature))
	sum := h.Sum64()

	idx := int(sum % uint64(len(vec)))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// EmbedBatch embeds each text in turn.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model name.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// Tokenize lower-cases text and splits it into words. Characters common in
// technology names ('+', '#', '.') stay inside a word; a trailing '.' is dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
