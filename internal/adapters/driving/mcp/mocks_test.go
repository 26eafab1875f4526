package mcp

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// mockMatchingService is a mock implementation of driving.MatchingService.
type mockMatchingService struct {
	record    *domain.StructuredRecord
	response  *domain.MatchResponse
	stats     domain.IndexStats
	report    domain.RebuildReport
	err       error
	content   []byte
	filename  string
	lastQuery domain.MatchQuery
}

func (m *mockMatchingService) Ingest(_ context.Context, content []byte, filename string) (*domain.StructuredRecord, error) {
	m.content = content
	m.filename = filename
	return m.record, m.err
}

func (m *mockMatchingService) IngestBatch(_ context.Context, _ []domain.Upload) ([]*domain.StructuredRecord, error) {
	return []*domain.StructuredRecord{m.record}, m.err
}

func (m *mockMatchingService) QueryMatches(_ context.Context, q domain.MatchQuery) (*domain.MatchResponse, error) {
	m.lastQuery = q
	return m.response, m.err
}

func (m *mockMatchingService) IndexStats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockMatchingService) RebuildIndex(_ context.Context) (domain.RebuildReport, error) {
	return m.report, m.err
}

func (m *mockMatchingService) DeleteRecord(_ context.Context, _ string) error {
	return domain.ErrNotSupported
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records []*domain.StructuredRecord
	err     error
}

func (m *mockRecordService) List(_ context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.records) {
		return []*domain.StructuredRecord{}, nil
	}
	end := min(offset+limit, len(m.records))
	return m.records[offset:end], nil
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.StructuredRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockExplanationService is a mock implementation of driving.ExplanationService.
type mockExplanationService struct {
	analysis *domain.JobAnalysis
	err      error
}

func (m *mockExplanationService) Explain(_ context.Context, _ domain.JobDescription, _ domain.Match) string {
	return "explained"
}

func (m *mockExplanationService) AnalyseJob(_ context.Context, _ domain.JobDescription) (*domain.JobAnalysis, error) {
	return m.analysis, m.err
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status string
}

func (m *mockStatusService) Health(_ context.Context) (*domain.HealthStatus, error) {
	return &domain.HealthStatus{Status: m.status}, nil
}

func sampleRecord(id string) *domain.StructuredRecord {
	years := 6
	return &domain.StructuredRecord{
		ID:              id,
		Filename:        id + ".txt",
		Skills:          []string{"Go", "Python"},
		ExperienceYears: &years,
		Education:       []string{},
		Certifications:  []string{},
		Languages:       []string{"English"},
		Sections:        map[domain.SectionKind]string{domain.SectionSkills: "Go, Python"},
		ContactInfo:     map[domain.ContactChannel]string{domain.ContactEmail: id + "@example.com"},
	}
}
