// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// MatchCompleted carries a match response back to the model.
type MatchCompleted struct {
	Response *domain.MatchResponse
	Err      error
}

// RecordsLoaded carries a page of ingested résumés.
type RecordsLoaded struct {
	Records []*domain.StructuredRecord
	Err     error
}

// RecordSelected is sent when a résumé is opened from a list.
// Match is set when the résumé was opened from match results.
type RecordSelected struct {
	Record domain.StructuredRecord
	Match  *domain.Match
	From   ViewType
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewMatch is the job entry and match results view.
	ViewMatch
	// ViewResumes lists ingested résumés.
	ViewResumes
	// ViewResumeDetail shows one résumé.
	ViewResumeDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewMatch:
		return "match"
	case ViewResumes:
		return "resumes"
	case ViewResumeDetail:
		return "resume_detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
