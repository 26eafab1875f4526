package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// mockMatchingService implements driving.MatchingService for testing.
type mockMatchingService struct {
	ingested    []string
	batches     [][]domain.Upload
	lastQuery   domain.MatchQuery
	ingestErr   map[string]error
	batchErr    error
	queryResp   *domain.MatchResponse
	queryErr    error
	stats       domain.IndexStats
	rebuild     domain.RebuildReport
	rebuilt     bool
	deleteCalls []string
}

func (m *mockMatchingService) Ingest(_ context.Context, _ []byte, filename string) (*domain.StructuredRecord, error) {
	if err := m.ingestErr[filename]; err != nil {
		return nil, err
	}
	m.ingested = append(m.ingested, filename)
	return testRecord(fmt.Sprintf("rec-%d", len(m.ingested)), filename), nil
}

func (m *mockMatchingService) IngestBatch(_ context.Context, uploads []domain.Upload) ([]*domain.StructuredRecord, error) {
	m.batches = append(m.batches, uploads)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([]*domain.StructuredRecord, len(uploads))
	for i, u := range uploads {
		out[i] = testRecord(fmt.Sprintf("batch-%d", i), u.Filename)
	}
	return out, nil
}

func (m *mockMatchingService) QueryMatches(_ context.Context, q domain.MatchQuery) (*domain.MatchResponse, error) {
	m.lastQuery = q
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.queryResp != nil {
		return m.queryResp, nil
	}
	return &domain.MatchResponse{JobTitle: q.Job.Title, Matches: []domain.Match{}}, nil
}

func (m *mockMatchingService) IndexStats(context.Context) (domain.IndexStats, error) {
	return m.stats, nil
}

func (m *mockMatchingService) RebuildIndex(context.Context) (domain.RebuildReport, error) {
	m.rebuilt = true
	return m.rebuild, nil
}

func (m *mockMatchingService) DeleteRecord(_ context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	return fmt.Errorf("delete record %s: %w", id, domain.ErrNotSupported)
}

// mockRecordService implements driving.RecordService for testing.
type mockRecordService struct {
	records    []*domain.StructuredRecord
	lastLimit  int
	lastOffset int
}

func (m *mockRecordService) List(_ context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if offset >= len(m.records) {
		return []*domain.StructuredRecord{}, nil
	}
	return m.records[offset:min(offset+limit, len(m.records))], nil
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.StructuredRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results   []domain.SearchResult
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastQuery, m.lastOpts = query, opts
	return m.results, nil
}

// mockExplanationService implements driving.ExplanationService for testing.
type mockExplanationService struct {
	analysis *domain.JobAnalysis
	err      error
	lastJob  domain.JobDescription
}

func (m *mockExplanationService) Explain(context.Context, domain.JobDescription, domain.Match) string {
	return "Relevant experience."
}

func (m *mockExplanationService) AnalyseJob(_ context.Context, job domain.JobDescription) (*domain.JobAnalysis, error) {
	m.lastJob = job
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

// mockStatusService implements driving.StatusService for testing.
type mockStatusService struct {
	health *domain.HealthStatus
}

func (m *mockStatusService) Health(context.Context) (*domain.HealthStatus, error) {
	return m.health, nil
}

// mockEmbedService implements driving.EmbedService for testing.
type mockEmbedService struct {
	dim int
}

func (m *mockEmbedService) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoContent
	}
	v := make([]float32, m.dim)
	v[0] = 1
	return v, nil
}

func (m *mockEmbedService) ModelName() string {
	return "hashing-test"
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetMatching(topK int, threshold float64) error {
	m.settings.Matching = domain.MatchingSettings{TopK: topK, Threshold: threshold}
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return nil }

func (m *mockSettingsService) ValidateLLMConfig() error { return nil }

func testRecord(id, filename string) *domain.StructuredRecord {
	years := 5
	return &domain.StructuredRecord{
		ID:              id,
		Filename:        filename,
		Skills:          []string{"go", "postgresql"},
		ExperienceYears: &years,
		Education:       []string{"master"},
		ContactInfo:     map[domain.ContactChannel]string{domain.ContactEmail: "dev@example.com"},
		Sections:        map[domain.SectionKind]string{domain.SectionSkills: "Go, PostgreSQL"},
		CreatedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// testServices holds the mocks injected by setupTestServices.
type testServices struct {
	matching *mockMatchingService
	records  *mockRecordService
	search   *mockSearchService
	explain  *mockExplanationService
	status   *mockStatusService
	embed    *mockEmbedService
	settings *mockSettingsService
}

// setupTestServices injects fresh mocks and removes them when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	svc := &testServices{
		matching: &mockMatchingService{},
		records:  &mockRecordService{},
		search:   &mockSearchService{},
		explain:  &mockExplanationService{analysis: &domain.JobAnalysis{}},
		status: &mockStatusService{health: &domain.HealthStatus{
			Status:         domain.HealthHealthy,
			EmbeddingModel: "hashing-test",
			Checks:         map[string]bool{"embedding": true, "index": true},
		}},
		embed:    &mockEmbedService{dim: 16},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetServices(Services{
		Matching: svc.matching,
		Records:  svc.records,
		Search:   svc.search,
		Explain:  svc.explain,
		Status:   svc.status,
		Embed:    svc.embed,
		Settings: svc.settings,
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return svc
}

// resetFlags restores every flag in the command tree to its default so
// package-level flag variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and stdin, returning
// stdout and stderr separately.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
