package driven

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// SearchEngine provides keyword search over ingested résumés.
// It complements the vector index: the index ranks by meaning, the engine
// finds literal terms such as a company, a certification or a surname.
type SearchEngine interface {
	// Index adds or replaces a record in the search index.
	Index(ctx context.Context, record *domain.StructuredRecord) error

	// IndexBatch adds many records in one batch.
	IndexBatch(ctx context.Context, records []*domain.StructuredRecord) error

	// Search performs a keyword search and returns matching record IDs with scores.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]SearchHit, error)

	// Clear removes every record. Used by index rebuild.
	Clear(ctx context.Context) error

	// Count returns the number of indexed records.
	Count() (uint64, error)

	// Close releases resources.
	Close() error
}

// SearchHit represents a search result from the engine.
type SearchHit struct {
	// RecordID is the matched résumé.
	RecordID string

	// Score is the relevance score (BM25), not comparable with similarity scores.
	Score float64

	// Highlights are fragments of matched text, markup stripped.
	Highlights []string
}
