// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// linesPerMatch is the rendered height of one match.
const linesPerMatch = 3

// MatchList displays ranked matches in a navigable list.
type MatchList struct {
	matches  []domain.Match
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewMatchList creates an empty match list.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *MatchList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation.
func (l *MatchList) Update(msg tea.Msg) (*MatchList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of matches.
func (l *MatchList) View() string {
	if len(l.matches) == 0 {
		return l.styles.Muted.Render("No matches above the threshold")
	}

	lines := make([]string, 0, len(l.matches)*linesPerMatch+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Matches (%d)", len(l.matches))), "")

	visible := max((l.height-4)/linesPerMatch, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.matches))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderMatch(i, &l.matches[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *MatchList) renderMatch(index int, m *domain.Match) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := m.Record.Filename
	maxName := max(l.width-20, 10)
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}

	score := fmt.Sprintf("%.3f", m.Score)
	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(fmt.Sprintf("%s%2d. %-*s  %s", indicator, index+1, maxName, name, score))
	} else {
		head = l.styles.Normal.Render(fmt.Sprintf("%s%2d. %-*s  ", indicator, index+1, maxName, name)) +
			l.styles.Score(m.Score).Render(score)
	}

	contact := m.Record.Email()
	if contact == "" {
		contact = "no email"
	}
	if m.Record.ExperienceYears != nil {
		contact += fmt.Sprintf(" · %dy experience", *m.Record.ExperienceYears)
	}
	contactLine := l.styles.Muted.Render("      " + contact)

	skills := "no required skills matched"
	if len(m.MatchingSkills) > 0 {
		skills = strings.Join(m.MatchingSkills, ", ")
	}
	maxSkills := max(l.width-8, 20)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills-3] + "..."
	}
	skillLine := l.styles.Skill.Render("      " + skills)

	return head + "\n" + contactLine + "\n" + skillLine
}

// SetMatches replaces the list contents and selects the first entry.
func (l *MatchList) SetMatches(matches []domain.Match) {
	l.matches = matches
	l.selected = 0
}

// Matches returns the current matches.
func (l *MatchList) Matches() []domain.Match {
	return l.matches
}

// Selected returns the index of the selected match.
func (l *MatchList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out-of-range values are ignored.
func (l *MatchList) SetSelected(index int) {
	if index >= 0 && index < len(l.matches) {
		l.selected = index
	}
}

// SelectedMatch returns the selected match, or nil when empty.
func (l *MatchList) SelectedMatch() *domain.Match {
	if l.selected < 0 || l.selected >= len(l.matches) {
		return nil
	}
	return &l.matches[l.selected]
}

// MoveUp moves selection up.
func (l *MatchList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *MatchList) MoveDown() {
	if l.selected < len(l.matches)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *MatchList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of matches.
func (l *MatchList) Count() int {
	return len(l.matches)
}
