package driven

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// VectorIndex owns the stored (vector, record) pairs and answers
// nearest-neighbour queries. Mutations persist synchronously before returning.
//
// Single-entry deletion is not supported; Delete always returns
// domain.ErrNotSupported. Rebuild is the only bulk mutation.
type VectorIndex interface {
	// Append validates, normalises and stores one vector, then persists.
	// Returns domain.ErrDimensionMismatch for a vector of the wrong length.
	Append(ctx context.Context, vector []float32, record domain.StructuredRecord) (int, error)

	// AppendBatch stores many items with one persistence write.
	// If any item is invalid, nothing is stored.
	AppendBatch(ctx context.Context, items []domain.IndexItem) ([]int, error)

	// Search returns up to topK entries scoring at least threshold, ordered by
	// descending score then ascending slot. An empty index yields no hits.
	Search(ctx context.Context, query []float32, topK int, threshold float64) ([]domain.IndexHit, error)

	// GetBySlot returns the entry at slot, or false when absent.
	GetBySlot(slot int) (*domain.IndexEntry, bool)

	// GetByRecordID returns the entry holding the record, or false when absent.
	GetByRecordID(id string) (*domain.IndexEntry, bool)

	// Delete always fails with domain.ErrNotSupported.
	Delete(ctx context.Context, recordID string) error

	// Rebuild discards every entry and starts a fresh, empty index.
	Rebuild(ctx context.Context) (domain.RebuildReport, error)

	// Persist writes the vector blob and metadata sidecar atomically.
	Persist(ctx context.Context) error

	// Load replaces in-memory state with the persisted pair.
	// Returns domain.ErrInconsistentState if the pair disagrees.
	Load(ctx context.Context) error

	// Stats summarises the index.
	Stats() domain.IndexStats

	// Dimension returns the configured vector length.
	Dimension() int

	// Close releases resources.
	Close() error
}
