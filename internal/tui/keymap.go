package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	SelectAll   key.Binding
	Escape      key.Binding
	Save        key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ScrollLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "scroll"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "tracks"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "zoom"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Undo: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "redo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.SelectAll, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollLeft, k.ScrollUp, k.ZoomIn},
		{k.SelectAll, k.Escape, k.Save, k.Undo, k.Quit},
	}
}
