package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the bindings of the main screen and the survey modal.
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Dismiss  key.Binding
	Activate key.Binding
	Survey   key.Binding
	Demo     key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Survey modal
	Launch key.Binding
	Copy   key.Binding
	Later  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "j", "down"),
			key.WithHelp("tab/j", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "k", "up"),
			key.WithHelp("k", "prev"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "action"),
		),
		Survey: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "survey"),
		),
		Demo: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "demo"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "take survey"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		Later: key.NewBinding(
			key.WithKeys("l", "esc"),
			key.WithHelp("l", "remind me later"),
		),
	}
}

// helpFor renders bindings as a help bar.
func helpFor(bindings ...key.Binding) string {
	out := " "
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += helpEntry(h.Key, h.Desc)
	}
	return out
}
