// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// Field identifies one input of the job form.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
)

// JobForm is a two-field form for a job title and description.
type JobForm struct {
	title       textinput.Model
	description textinput.Model
	focus       Field
	styles      *styles.Styles
	width       int
}

// NewJobForm creates a job form with the title field focused.
func NewJobForm(s *styles.Styles) *JobForm {
	if s == nil {
		s = styles.DefaultStyles()
	}

	title := textinput.New()
	title.Placeholder = "Senior Go Engineer"
	title.CharLimit = 200
	title.Width = 50
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Distributed systems, Kubernetes, 5+ years..."
	desc.CharLimit = 4000
	desc.Width = 50

	return &JobForm{
		title:       title,
		description: desc,
		focus:       FieldTitle,
		styles:      s,
		width:       50,
	}
}

// Init initialises the form.
func (f *JobForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards input to the focused field.
func (f *JobForm) Update(msg tea.Msg) (*JobForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == FieldTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

// View renders both fields, one per line.
func (f *JobForm) View() string {
	titleRow := lipgloss.JoinHorizontal(lipgloss.Center,
		f.label("Title:       ", FieldTitle),
		f.styles.InputField.Render(f.title.View()))
	descRow := lipgloss.JoinHorizontal(lipgloss.Center,
		f.label("Description: ", FieldDescription),
		f.styles.InputField.Render(f.description.View()))
	return lipgloss.JoinVertical(lipgloss.Left, titleRow, descRow)
}

func (f *JobForm) label(text string, field Field) string {
	if f.focus == field && f.Focused() {
		return f.styles.Title.Render(text)
	}
	return f.styles.Muted.Render(text)
}

// NextField moves focus to the other field.
func (f *JobForm) NextField() {
	if f.focus == FieldTitle {
		f.setFocus(FieldDescription)
	} else {
		f.setFocus(FieldTitle)
	}
}

func (f *JobForm) setFocus(field Field) {
	f.focus = field
	if field == FieldTitle {
		f.description.Blur()
		f.title.Focus()
	} else {
		f.title.Blur()
		f.description.Focus()
	}
}

// FocusedField returns the field receiving input.
func (f *JobForm) FocusedField() Field {
	return f.focus
}

// Focus focuses the current field.
func (f *JobForm) Focus() {
	f.setFocus(f.focus)
}

// Blur removes focus from both fields.
func (f *JobForm) Blur() {
	f.title.Blur()
	f.description.Blur()
}

// Focused returns whether either field has focus.
func (f *JobForm) Focused() bool {
	return f.title.Focused() || f.description.Focused()
}

// Job returns the form contents as a job description.
func (f *JobForm) Job() domain.JobDescription {
	return domain.JobDescription{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
	}
}

// Empty reports whether both fields are blank.
func (f *JobForm) Empty() bool {
	j := f.Job()
	return j.Title == "" && j.Description == ""
}

// SetJob fills the form.
func (f *JobForm) SetJob(title, description string) {
	f.title.SetValue(title)
	f.description.SetValue(description)
}

// SetWidth sets the width of both fields.
func (f *JobForm) SetWidth(width int) {
	f.width = width
	inputWidth := max(width-20, 20)
	f.title.Width = inputWidth
	f.description.Width = inputWidth
}

// Width returns the current width.
func (f *JobForm) Width() int {
	return f.width
}

// Reset clears both fields and focuses the title.
func (f *JobForm) Reset() {
	f.title.Reset()
	f.description.Reset()
	f.setFocus(FieldTitle)
}
