// Package match provides the job entry and match results view for the TUI.
package match

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// View has two modes: editing the job form, and navigating the ranked matches.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *input.JobForm
	list      *list.MatchList
	statusbar *status.Bar

	matching driving.MatchingService
	defaults domain.MatchingSettings
	explain  bool
	ctx      context.Context

	width    int
	height   int
	ready    bool
	err      error
	editing  bool
	response *domain.MatchResponse
}

// NewView creates a match view. explain requests per-match explanations.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	matching driving.MatchingService,
	defaults domain.MatchingSettings,
	explain bool,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		form:      input.NewJobForm(s),
		list:      list.NewMatchList(s),
		statusbar: status.NewBar(s, km),
		matching:  matching,
		defaults:  defaults,
		explain:   explain,
		ctx:       context.Background(),
		width:     80,
		height:    24,
		editing:   true,
	}
}

// WithContext sets the context used for match requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.form.Init()
}

// Update handles messages for the match view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.MatchCompleted:
		v.handleMatchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.editing {
		var cmd tea.Cmd
		v.form, cmd = v.form.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.editing {
		return v.handleFormKey(msg)
	}

	switch msg.String() {
	case "enter":
		m := v.list.SelectedMatch()
		if m == nil {
			return v, nil
		}
		selected := *m
		return v, func() tea.Msg {
			return messages.RecordSelected{Record: selected.Record, Match: &selected, From: messages.ViewMatch}
		}
	case "n":
		v.Reset()
		return v, nil
	case "e":
		// edit the current job and re-run
		v.editing = true
		v.form.Focus()
		v.statusbar.Clear()
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		v.form.NextField()
		return v, nil
	case tea.KeyEnter:
		if v.form.Empty() {
			v.statusbar.SetMessage("Enter a job title or description")
			return v, nil
		}
		v.err = nil
		v.editing = false
		v.form.Blur()
		v.statusbar.SetState(status.StateMatching)
		return v, v.performMatch(v.form.Job())
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) performMatch(job domain.JobDescription) tea.Cmd {
	query := domain.MatchQuery{
		Job:       job,
		TopK:      v.defaults.TopK,
		Threshold: v.defaults.Threshold,
		Explain:   v.explain,
	}
	return func() tea.Msg {
		if v.matching == nil {
			return messages.ErrorOccurred{Err: ErrNoMatchingService}
		}
		resp, err := v.matching.QueryMatches(v.ctx, query)
		return messages.MatchCompleted{Response: resp, Err: err}
	}
}

func (v *View) handleMatchCompleted(msg messages.MatchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	resp := msg.Response
	if resp == nil {
		resp = &domain.MatchResponse{}
	}
	v.err = nil
	v.response = resp
	v.list.SetMatches(resp.Matches)
	v.statusbar.SetResults(len(resp.Matches), resp.TotalResumes, resp.ProcessingTime)
}

// setError reports err and returns to the form so the job can be corrected.
func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.editing = true
	v.form.Focus()
}

// View renders the match view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Recruitr · Match"), "", v.form.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.response != nil {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.form.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, two form rows, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Editing returns whether the job form has focus.
func (v *View) Editing() bool {
	return v.editing
}

// Job returns the job currently in the form.
func (v *View) Job() domain.JobDescription {
	return v.form.Job()
}

// SetJob fills the job form.
func (v *View) SetJob(title, description string) {
	v.form.SetJob(title, description)
}

// Response returns the last successful match response.
func (v *View) Response() *domain.MatchResponse {
	return v.response
}

// SelectedIndex returns the index of the selected match.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the form and results.
func (v *View) Reset() {
	v.editing = true
	v.form.Reset()
	v.list.SetMatches(nil)
	v.response = nil
	v.err = nil
	v.statusbar.Clear()
}
