package domain

// SearchOptions configures a keyword search over résumés.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Skills restricts results to records listing every given skill.
	Skills []string

	// MinExperience restricts results to records stating at least this many years.
	// Zero disables the filter.
	MinExperience int
}

// DefaultSearchLimit is used when SearchOptions.Limit is not positive.
const DefaultSearchLimit = 20

// EffectiveLimit returns Limit, or DefaultSearchLimit when unset.
func (o SearchOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultSearchLimit
	}
	return o.Limit
}

// SearchResult represents a single keyword search hit.
type SearchResult struct {
	// Record is the matched résumé.
	Record StructuredRecord `json:"record"`

	// Score is the keyword relevance score.
	Score float64 `json:"score"`

	// Highlights contains snippets with matched terms.
	Highlights []string `json:"highlights,omitempty"`
}
