package driving

import (
	"context"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// ExplanationService produces natural-language commentary on matches.
type ExplanationService interface {
	// Explain justifies a single match. It never fails; without an LLM it
	// returns a templated explanation.
	Explain(ctx context.Context, job domain.JobDescription, match domain.Match) string

	// AnalyseJob extracts structured requirements from a job description.
	AnalyseJob(ctx context.Context, job domain.JobDescription) (*domain.JobAnalysis, error)
}

// StatusService reports engine health.
type StatusService interface {
	// Health checks every collaborator.
	Health(ctx context.Context) (*domain.HealthStatus, error)
}
