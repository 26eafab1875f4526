package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ensure EmbedService implements the interface.
var _ driving.EmbedService = (*EmbedService)(nil)

// EmbedService exposes the loaded embedding generator.
type EmbedService struct {
	embedder driven.EmbeddingService
}

// NewEmbedService creates a new embed service.
func NewEmbedService(embedder driven.EmbeddingService) *EmbedService {
	return &EmbedService{embedder: embedder}
}

// Embed returns the unit-length embedding for text.
func (s *EmbedService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	return s.embedder.Embed(ctx, text)
}

// ModelName returns the embedding model in use.
func (s *EmbedService) ModelName() string {
	return s.embedder.ModelName()
}
