package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/adapters/driven/keyword"
	"github.com/custodia-labs/recruitr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// stubSearchEngine returns fixed hits and records the last query.
type stubSearchEngine struct {
	hits      []driven.SearchHit
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (s *stubSearchEngine) Index(context.Context, *domain.StructuredRecord) error { return nil }

func (s *stubSearchEngine) IndexBatch(context.Context, []*domain.StructuredRecord) error { return nil }

func (s *stubSearchEngine) Search(_ context.Context, query string, opts domain.SearchOptions) ([]driven.SearchHit, error) {
	s.lastQuery, s.lastOpts = query, opts
	return s.hits, s.err
}

func (s *stubSearchEngine) Clear(context.Context) error { return nil }

func (s *stubSearchEngine) Count() (uint64, error) { return uint64(len(s.hits)), nil }

func (s *stubSearchEngine) Close() error { return nil }

func TestSearchService_HydratesHits(t *testing.T) {
	store := memory.NewRecordStore()
	seedRecords(t, store)
	engine := &stubSearchEngine{hits: []driven.SearchHit{
		{RecordID: "b.txt", Score: 2.5, Highlights: []string{"text of b"}},
		{RecordID: "a.txt", Score: 1.1},
	}}
	svc := NewSearchService(engine, NewRecordService(store, nil))

	opts := domain.SearchOptions{Limit: 5, Skills: []string{"go"}}
	results, err := svc.Search(context.Background(), "text", opts)

	require.NoError(t, err)
	assert.Equal(t, "text", engine.lastQuery)
	assert.Equal(t, opts, engine.lastOpts)
	require.Len(t, results, 2)
	assert.Equal(t, "b.txt", results[0].Record.ID)
	assert.InDelta(t, 2.5, results[0].Score, 1e-9)
	assert.Equal(t, []string{"text of b"}, results[0].Highlights)
	assert.Equal(t, "a.txt", results[1].Record.Filename)
}

func TestSearchService_SkipsStaleHits(t *testing.T) {
	store := memory.NewRecordStore()
	seedRecords(t, store)
	engine := &stubSearchEngine{hits: []driven.SearchHit{
		{RecordID: "gone", Score: 3},
		{RecordID: "c.txt", Score: 1},
	}}
	svc := NewSearchService(engine, NewRecordService(store, nil))

	results, err := svc.Search(context.Background(), "text", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c.txt", results[0].Record.ID)
}

func TestSearchService_EngineError(t *testing.T) {
	engine := &stubSearchEngine{err: errors.New("index closed")}
	svc := NewSearchService(engine, NewRecordService(memory.NewRecordStore(), nil))

	_, err := svc.Search(context.Background(), "go", domain.SearchOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index closed")
}

func TestSearchService_NoHits(t *testing.T) {
	svc := NewSearchService(&stubSearchEngine{}, NewRecordService(memory.NewRecordStore(), nil))

	results, err := svc.Search(context.Background(), "rust", domain.SearchOptions{})

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestEmbedService(t *testing.T) {
	embedder := &mockEmbeddingService{embedding: []float32{0.6, 0.8}, dims: 2}
	svc := NewEmbedService(embedder)

	vec, err := svc.Embed(context.Background(), "go engineer")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, vec)
	assert.Equal(t, "mock-embed", svc.ModelName())

	_, err = svc.Embed(context.Background(), " \n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_WithKeywordEngine(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()

	engine, err := keyword.Open("")
	require.NoError(t, err)
	defer engine.Close()

	kept := &domain.StructuredRecord{ID: "kept", Filename: "kept.txt", RawText: "Kubernetes operator developer", Skills: []string{"Kubernetes"}}
	stale := &domain.StructuredRecord{ID: "stale", Filename: "stale.txt", RawText: "Kubernetes administrator"}
	require.NoError(t, store.Save(ctx, kept))
	require.NoError(t, engine.IndexBatch(ctx, []*domain.StructuredRecord{kept, stale}))

	svc := NewSearchService(engine, NewRecordService(store, nil))

	results, err := svc.Search(ctx, "kubernetes", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "kept.txt", results[0].Record.Filename)
	assert.Greater(t, results[0].Score, 0.0)

	_, err = svc.Search(ctx, "", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
