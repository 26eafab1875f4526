package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.StructuredRecord
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.StructuredRecord),
	}
}

// Save stores or replaces a record.
func (s *RecordStore) Save(_ context.Context, record *domain.StructuredRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(record)
	return nil
}

// SaveBatch stores many records; nothing is stored if any record lacks an ID.
func (s *RecordStore) SaveBatch(_ context.Context, records []*domain.StructuredRecord) error {
	for _, r := range records {
		if r == nil || r.ID == "" {
			return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.put(r)
	}
	return nil
}

func (s *RecordStore) put(r *domain.StructuredRecord) {
	stored := *r
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.records[r.ID] = stored
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.StructuredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

// List returns records newest first.
func (s *RecordStore) List(_ context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	s.mu.RLock()
	all := make([]*domain.StructuredRecord, 0, len(s.records))
	for _, r := range s.records {
		r := r
		all = append(all, &r)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.StructuredRecord{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Clear removes every record.
func (s *RecordStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.StructuredRecord)
	return nil
}
