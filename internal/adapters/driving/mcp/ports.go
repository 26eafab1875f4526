package mcp

import (
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Matching ingests résumés and answers match queries.
	Matching driving.MatchingService

	// Records browses the résumé catalogue.
	Records driving.RecordService

	// Search runs keyword search over résumés.
	Search driving.SearchService

	// Explain analyses job descriptions.
	Explain driving.ExplanationService

	// Status reports engine health.
	Status driving.StatusService

	// Defaults are applied to match_job calls that omit threshold.
	Defaults domain.MatchingSettings
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Matching == nil {
		return ErrMissingMatchingService
	}
	return nil
}
