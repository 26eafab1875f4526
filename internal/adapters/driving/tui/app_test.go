package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Matching: &MockMatchingService{},
		Records: &MockRecordService{Records: []*domain.StructuredRecord{
			{ID: "r1", Filename: "alice.pdf"},
			{ID: "r2", Filename: "bob.pdf"},
		}},
		Defaults: domain.MatchingSettings{TopK: 4, Threshold: 0.65},
	}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// run applies msg and follows the app messages its commands produce.
// Component ticks such as cursor blinks are dropped.
func run(app *App, msg tea.Msg) {
	for msg != nil {
		_, cmd := app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		switch msg.(type) {
		case messages.ViewChanged, messages.RecordSelected, messages.RecordsLoaded,
			messages.MatchCompleted, messages.ErrorOccurred:
		default:
			return
		}
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Records: &MockRecordService{}})

	require.ErrorIs(t, err, ErrMissingMatchingService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Recruitr")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_MenuToMatchAndRun(t *testing.T) {
	ports := newTestPorts()
	matching := ports.Matching.(*MockMatchingService)
	matching.QueryMatchesFunc = func(_ context.Context, q domain.MatchQuery) (*domain.MatchResponse, error) {
		return &domain.MatchResponse{
			JobTitle:     q.Job.Title,
			TotalResumes: 2,
			Matches: []domain.Match{
				{Record: domain.StructuredRecord{ID: "r1", Filename: "alice.pdf"}, Score: 0.9},
			},
		}, nil
	}
	app := newTestApp(t, ports)

	run(app, tea.KeyMsg{Type: tea.KeyEnter}) // first menu item
	require.Equal(t, messages.ViewMatch, app.CurrentView())

	for _, r := range "Go" {
		app.Update(runeKey(r))
	}
	run(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Go", matching.LastQuery.Job.Title)
	assert.Equal(t, 4, matching.LastQuery.TopK)
	assert.InDelta(t, 0.65, matching.LastQuery.Threshold, 1e-9)
	assert.False(t, matching.LastQuery.Explain)
	assert.Contains(t, app.View(), "alice.pdf")

	run(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewResumeDetail, app.CurrentView())
	assert.Contains(t, app.View(), "Résumé · alice.pdf")
	assert.Contains(t, app.View(), "0.900")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMatch, app.CurrentView())
}

func TestApp_ExplainRequestedWhenConfigured(t *testing.T) {
	ports := newTestPorts()
	ports.Explain = MockExplanationService{}
	matching := ports.Matching.(*MockMatchingService)
	app := newTestApp(t, ports)

	run(app, messages.ViewChanged{View: messages.ViewMatch})
	app.Update(runeKey('x'))
	run(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, matching.LastQuery.Explain)
}

func TestApp_MatchErrorRecorded(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	run(app, messages.ViewChanged{View: messages.ViewMatch})

	app.Update(messages.MatchCompleted{Err: domain.ErrModelUnavailable})

	assert.ErrorIs(t, app.Err(), domain.ErrModelUnavailable)
	assert.Contains(t, app.View(), "Error:")
}

func TestApp_ResumesListAndDetail(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	run(app, messages.ViewChanged{View: messages.ViewResumes})
	require.Equal(t, messages.ViewResumes, app.CurrentView())
	assert.Contains(t, app.View(), "alice.pdf")
	assert.Contains(t, app.View(), "bob.pdf")

	app.Update(runeKey('j'))
	run(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewResumeDetail, app.CurrentView())
	assert.Contains(t, app.View(), "Résumé · bob.pdf")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewResumes, app.CurrentView())

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	run(app, messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Rank résumés against the job")

	app.Update(runeKey('x'))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurredForwarded(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	run(app, messages.RecordSelected{Record: domain.StructuredRecord{ID: "r1", Filename: "alice.pdf"}, From: messages.ViewResumes})

	app.Update(messages.ErrorOccurred{Err: errors.New("lost")})

	assert.EqualError(t, app.Err(), "lost")
	assert.Contains(t, app.View(), "Error: lost")
}
