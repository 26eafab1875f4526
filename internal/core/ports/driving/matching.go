package driving

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// MatchingService is the engine's outward interface: ingest résumés and
// match job descriptions against them.
type MatchingService interface {
	// Ingest normalises, extracts, embeds and indexes one résumé.
	Ingest(ctx context.Context, content []byte, filename string) (*domain.StructuredRecord, error)

	// IngestBatch ingests many résumés with a single index write.
	// If any upload fails, nothing is indexed.
	IngestBatch(ctx context.Context, uploads []domain.Upload) ([]*domain.StructuredRecord, error)

	// QueryMatches ranks indexed résumés against a job description.
	QueryMatches(ctx context.Context, query domain.MatchQuery) (*domain.MatchResponse, error)

	// IndexStats summarises the vector index.
	IndexStats(ctx context.Context) (domain.IndexStats, error)

	// RebuildIndex discards every indexed résumé. The report flags data loss.
	RebuildIndex(ctx context.Context) (domain.RebuildReport, error)

	// DeleteRecord always fails with domain.ErrNotSupported.
	DeleteRecord(ctx context.Context, id string) error
}

// EmbedService exposes raw embedding generation.
type EmbedService interface {
	// Embed returns the unit-length embedding for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the embedding model in use.
	ModelName() string
}
