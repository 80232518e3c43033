package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Rotation
	Left  key.Binding
	Right key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Sets   key.Binding
	Open   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "turn left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "turn right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Sets: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "frame sets"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open frame"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()

// HelpBindings returns bindings in help display order
func (k KeyMap) HelpBindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Sets, k.Open, k.Help, k.Quit}
}
