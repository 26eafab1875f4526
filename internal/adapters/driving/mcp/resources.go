package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Recruitr resources.
	uriScheme = "recruitr://"

	// resourceListLimit caps the résumé listing resource.
	resourceListLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/stats",
		Name:        "index-stats",
		Description: "Vector index size and file state",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	if s.ports.Records == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "resumes",
		Name:        "resumes",
		Description: "Most recently ingested résumés",
		MIMEType:    "application/json",
	}, s.handleResumesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "resumes/{id}",
		Name:        "resume",
		Description: "Structured fields of a single résumé",
		MIMEType:    "application/json",
	}, s.handleResumeResource)
}

// handleStatsResource returns the current index statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.Matching.IndexStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

// handleResumesResource lists the newest résumés.
func (s *Server) handleResumesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return jsonResource(req.Params.URI, []ResumeOutput{})
	}

	records, err := s.ports.Records.List(ctx, resourceListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing résumés: %w", err)
	}

	infos := make([]ResumeOutput, len(records))
	for i, r := range records {
		infos[i] = toResumeOutput(r)
	}
	return jsonResource(req.Params.URI, infos)
}

// handleResumeResource returns one résumé by ID.
func (s *Server) handleResumeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractResumeID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Records.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting résumé: %w", err)
	}

	return jsonResource(req.Params.URI, toResumeOutput(record))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractResumeID extracts the ID from a URI like recruitr://resumes/{id}.
func extractResumeID(uri string) string {
	id, ok := strings.CutPrefix(uri, uriScheme+"resumes/")
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
