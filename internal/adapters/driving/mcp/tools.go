package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// ResumeOutput is the flattened view of a structured résumé.
type ResumeOutput struct {
	ID              string            `json:"id"`
	Filename        string            `json:"filename"`
	Skills          []string          `json:"skills"`
	ExperienceYears *int              `json:"experience_years,omitempty"`
	Education       []string          `json:"education"`
	Certifications  []string          `json:"certifications"`
	Languages       []string          `json:"languages"`
	Contact         map[string]string `json:"contact,omitempty"`
	Sections        map[string]string `json:"sections,omitempty"`
	CreatedAt       string            `json:"created_at"`
}

// IngestInput is the input schema for the ingest_resume tool.
type IngestInput struct {
	Filename      string `json:"filename" jsonschema:"original file name; the extension (.pdf, .docx, .txt, .md, .html) selects the parser"`
	Content       string `json:"content,omitempty" jsonschema:"plain text résumé body, for .txt files"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"base64 encoded file body, for binary formats"`
}

// IngestOutput is the output schema for the ingest_resume tool.
type IngestOutput struct {
	Resume ResumeOutput `json:"resume"`
}

// MatchInput is the input schema for the match_job tool.
type MatchInput struct {
	Title          string   `json:"title" jsonschema:"job title"`
	Description    string   `json:"description" jsonschema:"job description body"`
	Requirements   string   `json:"requirements,omitempty" jsonschema:"additional requirements text"`
	RequiredSkills []string `json:"required_skills,omitempty" jsonschema:"skills to report overlap for"`
	TopK           int      `json:"top_k,omitempty" jsonschema:"maximum number of matches (default from settings)"`
	Threshold      *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity between 0 and 1 (default from settings)"`
	Explain        bool     `json:"explain,omitempty" jsonschema:"attach a short explanation to every match"`
}

// MatchOutput is the output schema for the match_job tool.
type MatchOutput struct {
	JobTitle       string        `json:"job_title"`
	TotalResumes   int           `json:"total_resumes"`
	Matches        []MatchResult `json:"matches"`
	ProcessingTime string        `json:"processing_time"`
}

// MatchResult is a single ranked match.
type MatchResult struct {
	Resume         ResumeOutput `json:"resume"`
	Score          float64      `json:"similarity_score"`
	MatchingSkills []string     `json:"matching_skills"`
	Explanation    string       `json:"explanation,omitempty"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// StatsOutput is the output schema for the index_stats tool.
type StatsOutput struct {
	Stats  domain.IndexStats `json:"stats"`
	Health string            `json:"health,omitempty"`
}

// RebuildInput is the input schema for the rebuild_index tool.
type RebuildInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true; every indexed résumé is discarded"`
}

// RebuildOutput is the output schema for the rebuild_index tool.
type RebuildOutput struct {
	Discarded int    `json:"discarded"`
	Lossy     bool   `json:"lossy"`
	Message   string `json:"message"`
}

// IDInput is the input schema for tools addressing one résumé.
type IDInput struct {
	ID string `json:"id" jsonschema:"résumé ID"`
}

// DeleteOutput is the output schema for the delete_resume tool.
type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// ListInput is the input schema for the list_resumes tool.
type ListInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of résumés (default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of résumés to skip"`
}

// ListOutput is the output schema for the list_resumes tool.
type ListOutput struct {
	Resumes []ResumeOutput `json:"resumes"`
	Count   int            `json:"count"`
}

// SearchInput is the input schema for the search_resumes tool.
type SearchInput struct {
	Query         string   `json:"query,omitempty" jsonschema:"free-text keyword query"`
	Skills        []string `json:"skills,omitempty" jsonschema:"only résumés listing every skill"`
	MinExperience int      `json:"min_experience,omitempty" jsonschema:"only résumés stating at least this many years"`
	Limit         int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 10)"`
}

// SearchOutput is the output schema for the search_resumes tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single keyword search hit.
type SearchResultOutput struct {
	Resume     ResumeOutput `json:"resume"`
	Score      float64      `json:"score"`
	Highlights []string     `json:"highlights,omitempty"`
}

// AnalyseInput is the input schema for the analyse_job tool.
type AnalyseInput struct {
	Title        string `json:"title" jsonschema:"job title"`
	Description  string `json:"description" jsonschema:"job description body"`
	Requirements string `json:"requirements,omitempty" jsonschema:"additional requirements text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_resume",
		Description: "Parse, extract and index a résumé file",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match_job",
		Description: "Rank indexed résumés against a job description by semantic similarity",
	}, s.handleMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report vector index size and health",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rebuild_index",
		Description: "Discard every indexed résumé and start an empty index",
	}, s.handleRebuild)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_resume",
		Description: "Delete a résumé (not supported by the append-only index)",
	}, s.handleDelete)

	if s.ports.Records != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_resume",
			Description: "Fetch a structured résumé by ID",
		}, s.handleGetResume)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_resumes",
			Description: "List ingested résumés, newest first",
		}, s.handleListResumes)
	}

	if s.ports.Search != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_resumes",
			Description: "Keyword search over résumé text with skill and experience filters",
		}, s.handleSearch)
	}

	if s.ports.Explain != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "analyse_job",
			Description: "Extract required skills and responsibilities from a job description",
		}, s.handleAnalyse)
	}
}

// handleIngest handles the ingest_resume tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	content := []byte(input.Content)
	if input.ContentBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(input.ContentBase64)
		if err != nil {
			return nil, IngestOutput{}, fmt.Errorf("decoding content_base64: %w", domain.ErrInvalidInput)
		}
		content = decoded
	}

	record, err := s.ports.Matching.Ingest(ctx, content, input.Filename)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{Resume: toResumeOutput(record)}, nil
}

// handleMatch handles the match_job tool invocation.
func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	query := domain.MatchQuery{
		Job: domain.JobDescription{
			Title:          input.Title,
			Description:    input.Description,
			Requirements:   input.Requirements,
			RequiredSkills: input.RequiredSkills,
		},
		TopK:      input.TopK,
		Threshold: s.ports.Defaults.Threshold,
		Explain:   input.Explain,
	}
	if query.TopK <= 0 {
		query.TopK = s.ports.Defaults.TopK
	}
	if input.Threshold != nil {
		query.Threshold = *input.Threshold
	}

	resp, err := s.ports.Matching.QueryMatches(ctx, query)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	output := MatchOutput{
		JobTitle:       resp.JobTitle,
		TotalResumes:   resp.TotalResumes,
		Matches:        make([]MatchResult, len(resp.Matches)),
		ProcessingTime: resp.ProcessingTime.Round(time.Millisecond).String(),
	}
	for i := range resp.Matches {
		m := &resp.Matches[i]
		output.Matches[i] = MatchResult{
			Resume:         toResumeOutput(&m.Record),
			Score:          m.Score,
			MatchingSkills: m.MatchingSkills,
			Explanation:    m.Explanation,
		}
	}

	return nil, output, nil
}

// handleStats handles the index_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Matching.IndexStats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{Stats: stats}
	if s.ports.Status != nil {
		if health, err := s.ports.Status.Health(ctx); err == nil {
			output.Health = health.Status
		}
	}
	return nil, output, nil
}

// handleRebuild handles the rebuild_index tool invocation.
func (s *Server) handleRebuild(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RebuildInput,
) (*mcp.CallToolResult, RebuildOutput, error) {
	if !input.Confirm {
		return nil, RebuildOutput{}, fmt.Errorf("rebuild requires confirm=true: %w", domain.ErrInvalidInput)
	}

	report, err := s.ports.Matching.RebuildIndex(ctx)
	if err != nil {
		return nil, RebuildOutput{}, err
	}

	msg := "index was already empty"
	if report.Lossy {
		msg = fmt.Sprintf("discarded %d résumés; re-ingest them to restore matching", report.Discarded)
	}
	return nil, RebuildOutput{Discarded: report.Discarded, Lossy: report.Lossy, Message: msg}, nil
}

// handleDelete handles the delete_resume tool invocation.
func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.ports.Matching.DeleteRecord(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: true}, nil
}

// handleGetResume handles the get_resume tool invocation.
func (s *Server) handleGetResume(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Records == nil {
		return nil, IngestOutput{}, ErrServiceUnavailable
	}

	record, err := s.ports.Records.Get(ctx, input.ID)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Resume: toResumeOutput(record)}, nil
}

// handleListResumes handles the list_resumes tool invocation.
func (s *Server) handleListResumes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.Records == nil {
		return nil, ListOutput{}, ErrServiceUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	records, err := s.ports.Records.List(ctx, limit, input.Offset)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{Resumes: make([]ResumeOutput, len(records)), Count: len(records)}
	for i, r := range records {
		output.Resumes[i] = toResumeOutput(r)
	}
	return nil, output, nil
}

// handleSearch handles the search_resumes tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Search == nil {
		return nil, SearchOutput{}, ErrServiceUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit, Skills: input.Skills, MinExperience: input.MinExperience}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Resume:     toResumeOutput(&results[i].Record),
			Score:      results[i].Score,
			Highlights: results[i].Highlights,
		}
	}

	return nil, output, nil
}

// handleAnalyse handles the analyse_job tool invocation.
func (s *Server) handleAnalyse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyseInput,
) (*mcp.CallToolResult, domain.JobAnalysis, error) {
	if s.ports.Explain == nil {
		return nil, domain.JobAnalysis{}, ErrServiceUnavailable
	}

	analysis, err := s.ports.Explain.AnalyseJob(ctx, domain.JobDescription{
		Title:        input.Title,
		Description:  input.Description,
		Requirements: input.Requirements,
	})
	if err != nil {
		return nil, domain.JobAnalysis{}, err
	}
	return nil, *analysis, nil
}

func toResumeOutput(r *domain.StructuredRecord) ResumeOutput {
	out := ResumeOutput{
		ID:              r.ID,
		Filename:        r.Filename,
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears,
		Education:       r.Education,
		Certifications:  r.Certifications,
		Languages:       r.Languages,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(r.ContactInfo) > 0 {
		out.Contact = make(map[string]string, len(r.ContactInfo))
		for k, v := range r.ContactInfo {
			out.Contact[string(k)] = v
		}
	}
	if len(r.Sections) > 0 {
		out.Sections = make(map[string]string, len(r.Sections))
		for k, v := range r.Sections {
			out.Sections[string(k)] = v
		}
	}
	return out
}
