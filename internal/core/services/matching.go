package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
	"github.com/custodia-labs/recruitr/internal/logger"
)

// Ensure MatchingService implements the interface.
var _ driving.MatchingService = (*MatchingService)(nil)

// MatchingService ingests résumés into the vector index and matches job
// descriptions against them.
//
// The vector index is the source of truth. The record store and keyword
// search engine are secondary catalogues: they are written after the index
// and a failure there is logged, not returned.
type MatchingService struct {
	normalisers driven.NormaliserRegistry
	extractor   driven.FieldExtractor
	embedder    driven.EmbeddingService
	index       driven.VectorIndex

	recordStore  driven.RecordStore
	searchEngine driven.SearchEngine
	explainer    driving.ExplanationService

	maxFileSize int64
	defaultTopK int
	now         func() time.Time
	newID       func() string
}

// NewMatchingService creates a new matching service.
func NewMatchingService(
	normalisers driven.NormaliserRegistry,
	extractor driven.FieldExtractor,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *MatchingService {
	return &MatchingService{
		normalisers: normalisers,
		extractor:   extractor,
		embedder:    embedder,
		index:       index,
		maxFileSize: domain.DefaultMaxFileSize,
		defaultTopK: domain.DefaultTopK,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// SetRecordStore sets the catalogue written on ingest and cleared on rebuild.
func (s *MatchingService) SetRecordStore(store driven.RecordStore) {
	s.recordStore = store
}

// SetSearchEngine sets the keyword index written on ingest and cleared on rebuild.
func (s *MatchingService) SetSearchEngine(engine driven.SearchEngine) {
	s.searchEngine = engine
}

// SetExplainer sets the service used when a query asks for explanations.
func (s *MatchingService) SetExplainer(explainer driving.ExplanationService) {
	s.explainer = explainer
}

// SetMaxFileSize sets the upload size limit in bytes. Zero or less disables it.
func (s *MatchingService) SetMaxFileSize(n int64) {
	s.maxFileSize = n
}

// SetDefaultTopK sets the match count used when a query leaves TopK unset.
func (s *MatchingService) SetDefaultTopK(n int) {
	if n > 0 {
		s.defaultTopK = n
	}
}

// Ingest normalises, extracts, embeds and indexes one résumé.
func (s *MatchingService) Ingest(ctx context.Context, content []byte, filename string) (*domain.StructuredRecord, error) {
	logger.Section("Ingest")
	logger.Debug("File: %q (%d bytes)", filename, len(content))

	record, err := s.prepare(ctx, domain.Upload{Filename: filename, Content: content})
	if err != nil {
		return nil, err
	}

	vector, err := s.embedder.Embed(ctx, record.RawText)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", filename, err)
	}

	slot, err := s.index.Append(ctx, vector, *record)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", filename, err)
	}
	logger.Info("Indexed %s as %s (slot %d, %d skills)", filename, record.ID, slot, len(record.Skills))

	s.catalogue(ctx, []*domain.StructuredRecord{record})
	return record, nil
}

// IngestBatch ingests many résumés with a single index write.
// Every upload is prepared and embedded before anything is indexed, so one
// bad file leaves the index untouched.
func (s *MatchingService) IngestBatch(ctx context.Context, uploads []domain.Upload) ([]*domain.StructuredRecord, error) {
	logger.Section("Batch Ingest")
	if len(uploads) == 0 {
		return []*domain.StructuredRecord{}, nil
	}

	records := make([]*domain.StructuredRecord, len(uploads))
	texts := make([]string, len(uploads))
	for i, u := range uploads {
		record, err := s.prepare(ctx, u)
		if err != nil {
			return nil, err
		}
		records[i] = record
		texts[i] = record.RawText
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ingest batch: %w", err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("ingest batch: got %d embeddings for %d files", len(vectors), len(records))
	}

	items := make([]domain.IndexItem, len(records))
	for i, r := range records {
		items[i] = domain.IndexItem{Vector: vectors[i], Record: *r}
	}

	if _, err := s.index.AppendBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("ingest batch: %w", err)
	}
	logger.Info("Indexed %d résumés", len(records))

	s.catalogue(ctx, records)
	return records, nil
}

// prepare validates an upload and turns it into a record with an ID.
func (s *MatchingService) prepare(ctx context.Context, u domain.Upload) (*domain.StructuredRecord, error) {
	name := strings.TrimSpace(u.Filename)
	if name == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	format, ok := domain.FormatFromFilename(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: allowed extensions are %s",
			name, domain.ErrUnsupportedFormat, strings.Join(domain.AllowedExtensions(), ", "))
	}

	if s.maxFileSize > 0 && int64(len(u.Content)) > s.maxFileSize {
		return nil, fmt.Errorf("%s: %w: %d bytes exceeds limit of %d",
			name, domain.ErrFileTooLarge, len(u.Content), s.maxFileSize)
	}

	text, err := s.normalisers.Normalise(ctx, &domain.RawDocument{
		Filename: name,
		Format:   format,
		Content:  u.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	record, err := s.extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	record.ID = s.newID()
	record.Filename = name
	record.CreatedAt = s.now()
	return record, nil
}

// catalogue writes records to the secondary stores.
func (s *MatchingService) catalogue(ctx context.Context, records []*domain.StructuredRecord) {
	if s.recordStore != nil {
		if err := s.recordStore.SaveBatch(ctx, records); err != nil {
			logger.Warn("record store: %v", err)
		}
	}
	if s.searchEngine != nil {
		if err := s.searchEngine.IndexBatch(ctx, records); err != nil {
			logger.Warn("keyword index: %v", err)
		}
	}
}

// QueryMatches ranks indexed résumés against a job description.
// Ranking is by vector similarity alone; skill overlap is reported per match.
func (s *MatchingService) QueryMatches(ctx context.Context, query domain.MatchQuery) (*domain.MatchResponse, error) {
	start := time.Now()
	logger.Section("Match")

	job := query.Job
	if strings.TrimSpace(job.Title) == "" && strings.TrimSpace(job.Description) == "" {
		return nil, fmt.Errorf("%w: job title or description is required", domain.ErrInvalidInput)
	}
	if query.Threshold < 0 || query.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %.2f is outside [0, 1]", domain.ErrInvalidInput, query.Threshold)
	}

	topK := query.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	logger.Debug("Job: %q, topK=%d, threshold=%.2f", job.Title, topK, query.Threshold)

	vector, err := s.embedder.Embed(ctx, job.Text())
	if err != nil {
		return nil, fmt.Errorf("embed job: %w", err)
	}

	hits, err := s.index.Search(ctx, vector, topK, query.Threshold)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	matches := make([]domain.Match, len(hits))
	for i, hit := range hits {
		matches[i] = domain.Match{
			Record:         hit.Record,
			Score:          hit.Score,
			MatchingSkills: hit.Record.SkillOverlap(job.RequiredSkills),
		}
	}

	if query.Explain {
		if s.explainer == nil {
			logger.Warn("explanations requested but no explainer is configured")
		} else {
			for i := range matches {
				matches[i].Explanation = s.explainer.Explain(ctx, job, matches[i])
			}
		}
	}

	resp := &domain.MatchResponse{
		JobTitle:       job.Title,
		TotalResumes:   s.index.Stats().TotalVectors,
		Matches:        matches,
		ProcessingTime: time.Since(start),
	}
	logger.Info("%d of %d résumés matched in %s", len(matches), resp.TotalResumes, resp.ProcessingTime)
	return resp, nil
}

// IndexStats summarises the vector index.
func (s *MatchingService) IndexStats(_ context.Context) (domain.IndexStats, error) {
	return s.index.Stats(), nil
}

// RebuildIndex discards the vector index and clears the secondary catalogues.
// Discarded résumés are not re-embedded; the report flags the loss.
func (s *MatchingService) RebuildIndex(ctx context.Context) (domain.RebuildReport, error) {
	logger.Section("Rebuild Index")

	report, err := s.index.Rebuild(ctx)
	if err != nil {
		return domain.RebuildReport{}, fmt.Errorf("rebuild index: %w", err)
	}

	var errs []error
	if s.recordStore != nil {
		if err := s.recordStore.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear record store: %w", err))
		}
	}
	if s.searchEngine != nil {
		if err := s.searchEngine.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear keyword index: %w", err))
		}
	}

	if report.Lossy {
		logger.Warn("rebuild discarded %d résumés; re-ingest them to restore matches", report.Discarded)
	}
	return report, errors.Join(errs...)
}

// DeleteRecord always fails: single-entry deletion is not supported.
func (s *MatchingService) DeleteRecord(_ context.Context, id string) error {
	return fmt.Errorf("delete record %s: %w", id, domain.ErrNotSupported)
}
