// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Match submits the job form.
	Match key.Binding

	// NextField moves focus between the job title and description.
	NextField key.Binding

	Up   key.Binding
	Down key.Binding

	// Open shows the selected résumé.
	Open key.Binding

	// NewJob clears the form from the results view.
	NewJob key.Binding

	// Refresh reloads the résumé list.
	Refresh key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Match: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "match"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NewJob: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new job"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// FormHelp returns keybindings shown while editing the job form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Match, k.Back}
}

// ResultsHelp returns keybindings for the match results list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewJob, k.Up, k.Open, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.NextField, k.Match, k.NewJob},
		{k.Refresh, k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
