package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService reads the catalogue of ingested résumés.
// Lookups that miss the record store fall back to the vector index, which
// holds every record's metadata.
type RecordService struct {
	store driven.RecordStore
	index driven.VectorIndex
}

// NewRecordService creates a new record service.
// The index parameter is optional (can be nil).
func NewRecordService(store driven.RecordStore, index driven.VectorIndex) *RecordService {
	return &RecordService{store: store, index: index}
}

// List returns records, newest first.
func (s *RecordService) List(ctx context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidInput)
	}
	records, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (*domain.StructuredRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}

	record, err := s.store.Get(ctx, id)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}

	if s.index != nil {
		if entry, ok := s.index.GetByRecordID(id); ok {
			return &entry.Record, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
}
