package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"mathtimeline/internal/ui/timeline"
	"mathtimeline/internal/ui/views"
)

// keyMap feeds the help bar; input handling lives in internal/ui/input
type keyMap struct {
	Search key.Binding
	Toggle key.Binding
	Focus  key.Binding
	Pager  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding

	timeline timeline.KeyMap
	focus    views.Pane
}

func newKeyMap(tl timeline.KeyMap) keyMap {
	return keyMap{
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Pager:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pager")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		timeline: tl,
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	if k.focus == views.PaneTimeline {
		return append(k.timeline.ShortHelp(), k.Focus, k.Help)
	}
	return []key.Binding{k.Search, k.Toggle, k.Focus, k.Pager, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return append([][]key.Binding{
		{k.Search, k.Toggle, k.Focus},
		{k.Pager, k.Copy, k.Help, k.Quit},
	}, k.timeline.FullHelp()...)
}
