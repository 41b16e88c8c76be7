package recipients

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the recipient selector's key bindings.
type KeyMap struct {
	Commit    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Close     key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the standard bindings: Enter, Tab, comma and
// semicolon commit; arrows move the highlight; Esc closes the panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit: key.NewBinding(
			key.WithKeys("enter", "tab", ",", ";"),
			key.WithHelp("enter/,", "add recipient"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next suggestion"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous suggestion"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close suggestions"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "remove last"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Next, k.Prev, k.Close, k.Backspace}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
