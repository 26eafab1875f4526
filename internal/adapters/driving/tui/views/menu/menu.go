// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
)

// Item is a single menu option.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the main menu.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Match a job", Hint: "rank résumés against a job description", View: messages.ViewMatch},
			{Label: "Résumés", Hint: "browse ingested résumés", View: messages.ViewResumes},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}
		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Recruitr"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Résumé matching"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
			if item.Hint != "" {
				b.WriteString(v.styles.Muted.Render("  " + item.Hint))
			}
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
