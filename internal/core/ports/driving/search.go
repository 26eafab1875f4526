package driving

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// SearchService provides keyword search over ingested résumés.
type SearchService interface {
	// Search finds résumés by free text, optionally filtered by skills and
	// minimum years of experience.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
