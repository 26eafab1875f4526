package driven

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// RecordStore is the catalogue of ingested résumés, kept alongside the
// vector index for listing and lookup by identifier.
type RecordStore interface {
	// Save stores a record. Records are immutable; saving an existing ID
	// replaces it only during recovery.
	Save(ctx context.Context, record *domain.StructuredRecord) error

	// SaveBatch stores many records in one transaction.
	SaveBatch(ctx context.Context, records []*domain.StructuredRecord) error

	// Get retrieves a record by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.StructuredRecord, error)

	// List returns records ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.StructuredRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Clear removes every record. Used by index rebuild.
	Clear(ctx context.Context) error
}
