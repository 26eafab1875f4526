package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptMatchExplanation explains why a résumé matches a job.
	// Placeholders: %s job text, %s résumé content, %.2f score, %s skills line.
	PromptMatchExplanation = "match_explanation"

	// PromptJobAnalysis extracts requirements from a job description.
	// Placeholder: %s job text.
	PromptJobAnalysis = "job_analysis"
)
