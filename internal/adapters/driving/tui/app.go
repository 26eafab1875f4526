package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/views/match"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/views/resumedetail"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/views/resumes"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView    *menu.View
	matchView   *match.View
	resumesView *resumes.View
	detailView  *resumedetail.View

	currentView messages.ViewType

	// err holds the last error reported by any view.
	err error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		matchView:   match.NewView(s, km, ports.Matching, ports.matchDefaults(), ports.Explain != nil),
		resumesView: resumes.NewView(s, ports.Records),
		detailView:  resumedetail.NewView(s),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context passed to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.matchView.WithContext(ctx)
	a.resumesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("recruitr")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewMatch:
			return a, a.matchView.Init()
		case messages.ViewResumes:
			return a, a.resumesView.Init()
		case messages.ViewMenu, messages.ViewResumeDetail, messages.ViewHelp:
		}
		return a, nil

	case messages.RecordSelected:
		a.detailView.SetRecord(msg.Record, msg.Match, msg.From)
		a.currentView = messages.ViewResumeDetail
		return a, nil

	case messages.MatchCompleted:
		a.matchView, cmd = a.matchView.Update(msg)
		a.err = a.matchView.Err()
		return a, cmd

	case messages.RecordsLoaded:
		a.resumesView, cmd = a.resumesView.Update(msg)
		a.err = a.resumesView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewMatch:
			a.matchView, cmd = a.matchView.Update(msg)
		case messages.ViewResumes:
			a.resumesView, cmd = a.resumesView.Update(msg)
		case messages.ViewResumeDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// cursor blink and other component ticks
	if a.currentView == messages.ViewMatch {
		a.matchView, cmd = a.matchView.Update(msg)
	}
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewMatch:
		a.matchView, cmd = a.matchView.Update(msg)
	case messages.ViewResumes:
		a.resumesView, cmd = a.resumesView.Update(msg)
	case messages.ViewResumeDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMatch:
		return a.matchView.View()
	case messages.ViewResumes:
		return a.resumesView.View()
	case messages.ViewResumeDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Match:
  tab         Switch between title and description
  enter       Rank résumés against the job
  j/k, ↑/↓    Navigate matches
  enter       Open the selected résumé
  e           Edit the job
  n           New job

Résumés:
  j/k, ↑/↓    Navigate
  enter       Open
  [ / ]       Previous / next page
  r           Reload

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.matchView.SetDimensions(width, height)
	a.resumesView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
