// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
)

// State is what the status bar reports on its left side.
type State string

const (
	StateReady    State = "ready"
	StateMatching State = "matching"
	StateError    State = "error"
	StateResults  State = "results"
)

// Bar displays match progress and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	total   int
	elapsed time.Duration
	width   int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the bar across the full width.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	inner := b.width - b.styles.StatusBar.GetHorizontalPadding()
	padding := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateMatching:
		return b.styles.Muted.Render("Matching...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateResults:
		text := fmt.Sprintf("%d of %d résumés matched", b.count, b.total)
		if b.elapsed > 0 {
			text += fmt.Sprintf(" in %s", b.elapsed.Round(time.Millisecond))
		}
		return b.styles.Normal.Render(text)
	case StateReady:
	}
	if b.message != "" {
		return b.styles.Muted.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.state == StateResults && b.count > 0 {
		bindings = b.keymap.ResultsHelp()
	} else {
		bindings = b.keymap.FormHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error or idle message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetResults records the outcome of a match and switches to StateResults.
func (b *Bar) SetResults(count, total int, elapsed time.Duration) {
	b.state = StateResults
	b.count = count
	b.total = total
	b.elapsed = elapsed
}

// Count returns the number of matches last reported.
func (b *Bar) Count() int {
	return b.count
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the bar to StateReady.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.count = 0
	b.total = 0
	b.elapsed = 0
}
