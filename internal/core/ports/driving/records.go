package driving

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// RecordService exposes the catalogue of ingested résumés.
type RecordService interface {
	// List returns records, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.StructuredRecord, error)

	// Get retrieves a record by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.StructuredRecord, error)
}
