// Package keyword provides BM25 keyword search over résumés using Bleve.
package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	keywordanalyzer "github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Field names in the Bleve document.
const (
	fieldFilename       = "filename"
	fieldText           = "raw_text"
	fieldSkills         = "skills"
	fieldSkillsText     = "skills_text"
	fieldEducation      = "education"
	fieldCertifications = "certifications"
	fieldExperience     = "experience_years"
	fieldCreatedAt      = "created_at"
)

// Engine is a Bleve-backed keyword search engine.
type Engine struct {
	mu    sync.RWMutex
	path  string
	index bleve.Index
}

// Open opens the Bleve index at path, creating it when absent.
// An empty path keeps the index in memory.
func Open(path string) (*Engine, error) {
	index, err := openIndex(path)
	if err != nil {
		return nil, err
	}
	return &Engine{path: path, index: index}, nil
}

func openIndex(path string) (bleve.Index, error) {
	if path == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create keyword index: %w", err)
		}
		return index, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		index, err := bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create keyword index: %w", err)
		}
		return index, nil
	}

	index, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyword index: %w", err)
	}
	return index, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name

	// Skills are matched exactly for filtering, lower-cased before indexing.
	exact := bleve.NewKeywordFieldMapping()
	exact.Analyzer = keywordanalyzer.Name
	exact.IncludeInAll = false

	years := bleve.NewNumericFieldMapping()
	years.IncludeInAll = false

	created := bleve.NewDateTimeFieldMapping()
	created.IncludeInAll = false

	doc.AddFieldMappingsAt(fieldFilename, text)
	doc.AddFieldMappingsAt(fieldText, text)
	doc.AddFieldMappingsAt(fieldSkills, exact)
	doc.AddFieldMappingsAt(fieldSkillsText, text)
	doc.AddFieldMappingsAt(fieldEducation, text)
	doc.AddFieldMappingsAt(fieldCertifications, text)
	doc.AddFieldMappingsAt(fieldExperience, years)
	doc.AddFieldMappingsAt(fieldCreatedAt, created)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = standard.Name
	return im
}

// toDocument flattens a record into the indexed fields.
func toDocument(r *domain.StructuredRecord) map[string]any {
	skills := make([]string, len(r.Skills))
	for i, s := range r.Skills {
		skills[i] = strings.ToLower(s)
	}

	doc := map[string]any{
		fieldFilename:       r.Filename,
		fieldText:           r.RawText,
		fieldSkills:         skills,
		fieldSkillsText:     strings.Join(r.Skills, " "),
		fieldEducation:      strings.Join(r.Education, " "),
		fieldCertifications: strings.Join(r.Certifications, " "),
		fieldCreatedAt:      r.CreatedAt,
	}
	if r.ExperienceYears != nil {
		doc[fieldExperience] = float64(*r.ExperienceYears)
	}
	return doc
}

// Index adds or replaces a record.
func (e *Engine) Index(_ context.Context, record *domain.StructuredRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.index.Index(record.ID, toDocument(record)); err != nil {
		return fmt.Errorf("index record %s: %w", record.ID, err)
	}
	return nil
}

// IndexBatch adds many records in one Bleve batch.
func (e *Engine) IndexBatch(_ context.Context, records []*domain.StructuredRecord) error {
	for _, r := range records {
		if r == nil || r.ID == "" {
			return fmt.Errorf("%w: record must have an ID", domain.ErrInvalidInput)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	batch := e.index.NewBatch()
	for _, r := range records {
		if err := batch.Index(r.ID, toDocument(r)); err != nil {
			return fmt.Errorf("batch record %s: %w", r.ID, err)
		}
	}
	if err := e.index.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}
	return nil
}

// Search runs a keyword query with optional skill and experience filters.
// A blank query is allowed only when a filter is set.
func (e *Engine) Search(_ context.Context, text string, opts domain.SearchOptions) ([]driven.SearchHit, error) {
	q, err := buildQuery(text, opts)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(q, opts.EffectiveLimit(), max(opts.Offset, 0), false)
	if strings.TrimSpace(text) != "" {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField(fieldText)
	}

	e.mu.RLock()
	res, err := e.index.Search(req)
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	hits := make([]driven.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := driven.SearchHit{RecordID: h.ID, Score: h.Score}
		for _, frag := range h.Fragments[fieldText] {
			hit.Highlights = append(hit.Highlights, stripMarks(frag))
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func buildQuery(text string, opts domain.SearchOptions) (query.Query, error) {
	text = strings.TrimSpace(text)
	var must []query.Query

	if text != "" {
		must = append(must, textQuery(text))
	}

	for _, s := range opts.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		tq := bleve.NewTermQuery(s)
		tq.SetField(fieldSkills)
		must = append(must, tq)
	}

	if opts.MinExperience > 0 {
		lo := float64(opts.MinExperience)
		inclusive := true
		nq := bleve.NewNumericRangeInclusiveQuery(&lo, nil, &inclusive, nil)
		nq.SetField(fieldExperience)
		must = append(must, nq)
	}

	switch len(must) {
	case 0:
		return nil, fmt.Errorf("%w: search needs a query or a filter", domain.ErrInvalidInput)
	case 1:
		return must[0], nil
	default:
		return bleve.NewConjunctionQuery(must...), nil
	}
}

// textQuery matches free text across résumé fields, weighting skills and
// certifications above body text.
func textQuery(text string) query.Query {
	match := func(field string, boost float64) query.Query {
		mq := bleve.NewMatchQuery(text)
		mq.SetField(field)
		mq.SetBoost(boost)
		return mq
	}
	return bleve.NewDisjunctionQuery(
		match(fieldText, 1),
		match(fieldSkillsText, 2),
		match(fieldCertifications, 1.5),
		match(fieldEducation, 1),
		match(fieldFilename, 0.5),
	)
}

func stripMarks(s string) string {
	return strings.NewReplacer("<mark>", "", "</mark>", "").Replace(s)
}

// Clear removes every record by recreating the index.
func (e *Engine) Clear(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.index.Close(); err != nil {
		return fmt.Errorf("close keyword index: %w", err)
	}
	if e.path != "" {
		if err := os.RemoveAll(e.path); err != nil {
			return fmt.Errorf("remove keyword index: %w", err)
		}
	}

	index, err := openIndex(e.path)
	if err != nil {
		return err
	}
	e.index = index
	return nil
}

// Count returns the number of indexed records.
func (e *Engine) Count() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.DocCount()
}

// Close releases the index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Close()
}
