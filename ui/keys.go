package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the attach viewer's key bindings.
type KeyMap struct {
	Abort    key.Binding
	EndPhase key.Binding
	Detach   key.Binding
}

// DefaultKeyMap returns the viewer bindings, matching the hotkeys of the
// session-owning process.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort session"),
		),
		EndPhase: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "end phase"),
		),
		Detach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "detach viewer"),
		),
	}
}
