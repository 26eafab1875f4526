package domain

import (
	"strings"
	"time"
)

// JobDescription is the free-text job posting matched against résumés.
type JobDescription struct {
	// Title is the job title.
	Title string `json:"title" yaml:"title"`

	// Description is the main posting body.
	Description string `json:"description" yaml:"description"`

	// Requirements is optional additional requirements text.
	Requirements string `json:"requirements,omitempty" yaml:"requirements"`

	// RequiredSkills are compared against résumé skills for overlap reporting.
	RequiredSkills []string `json:"required_skills,omitempty" yaml:"required_skills"`
}

// Text returns the text embedded for matching: title, description and
// requirements joined by newlines.
func (j JobDescription) Text() string {
	text := j.Title + "\n" + j.Description
	if strings.TrimSpace(j.Requirements) != "" {
		text += "\n" + j.Requirements
	}
	return text
}

// MatchQuery configures a job-to-résumé match.
type MatchQuery struct {
	// Job is the job posting.
	Job JobDescription

	// TopK is the maximum number of matches to return.
	TopK int

	// Threshold is the minimum similarity score in [0, 1].
	Threshold float64

	// Explain requests an explanation for every match.
	Explain bool
}

// Match is a single ranked résumé match.
type Match struct {
	// Record is the matched résumé.
	Record StructuredRecord `json:"record"`

	// Score is the vector similarity, the sole ranking key.
	Score float64 `json:"similarity_score"`

	// MatchingSkills is the lower-cased intersection of required and résumé skills.
	MatchingSkills []string `json:"matching_skills"`

	// Explanation is a short natural-language justification, when requested.
	Explanation string `json:"explanation,omitempty"`
}

// MatchResponse is the result of a match query.
type MatchResponse struct {
	// JobTitle echoes the queried title.
	JobTitle string `json:"job_title"`

	// TotalResumes is the index size at query time.
	TotalResumes int `json:"total_resumes"`

	// Matches are ordered by descending score.
	Matches []Match `json:"matches"`

	// ProcessingTime is how long the query took.
	ProcessingTime time.Duration `json:"processing_time"`
}

// JobAnalysis is the structured breakdown of a job description.
type JobAnalysis struct {
	RequiredSkills   []string `json:"required_skills"`
	Experience       string   `json:"experience,omitempty"`
	Education        string   `json:"education,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	NiceToHave       []string `json:"nice_to_have"`
}

// HealthStatus reports the state of the engine's collaborators.
type HealthStatus struct {
	// Status is "healthy" when every check passes, otherwise "degraded".
	Status string `json:"status"`

	// EmbeddingModel is the loaded embedding model name.
	EmbeddingModel string `json:"embedding_model"`

	// LLMModel is the explanation model name, empty when unconfigured.
	LLMModel string `json:"llm_model,omitempty"`

	// Checks maps a collaborator name to whether it passed.
	Checks map[string]bool `json:"checks"`

	// Index is the current index summary.
	Index IndexStats `json:"index"`
}

// Health status values.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)
