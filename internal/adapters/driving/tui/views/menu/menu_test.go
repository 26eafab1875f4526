package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_NavigationStopsAtBounds(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	for range 10 {
		view.Update(runeKey('j'))
	}
	assert.Equal(t, 3, view.Selected())

	view.Update(runeKey('k'))
	assert.Equal(t, 2, view.Selected())
}

func TestView_Update_EnterChangesView(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewMatch},
		{1, messages.ViewResumes},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)

			msg, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg.View)
		})
	}
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil)
	_, cmd := view.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	view.selected = 3
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(80, 24)
	out := view.View()

	assert.Contains(t, out, "Recruitr")
	assert.Contains(t, out, "Match a job")
	assert.Contains(t, out, "rank résumés against a job description")
	assert.Contains(t, out, "Résumés")
	assert.Contains(t, out, "Quit")
}
