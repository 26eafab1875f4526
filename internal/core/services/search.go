package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
	"github.com/custodia-labs/recruitr/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs keyword queries and hydrates hits from the record catalogue.
type SearchService struct {
	engine  driven.SearchEngine
	records driving.RecordService
}

// NewSearchService creates a new search service.
func NewSearchService(engine driven.SearchEngine, records driving.RecordService) *SearchService {
	return &SearchService{engine: engine, records: records}
}

// Search finds résumés by keyword. Hits whose record has gone are skipped.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	logger.Section("Keyword Search")
	logger.Debug("Query: %q, skills=%v, min experience=%d", query, opts.Skills, opts.MinExperience)

	hits, err := s.engine.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		record, err := s.records.Get(ctx, hit.RecordID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("Skipping stale hit %s", hit.RecordID)
				continue
			}
			return nil, fmt.Errorf("hydrate %s: %w", hit.RecordID, err)
		}
		results = append(results, domain.SearchResult{
			Record:     *record,
			Score:      hit.Score,
			Highlights: hit.Highlights,
		})
	}

	logger.Info("Keyword search returned %d results", len(results))
	return results, nil
}
