package timeline

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the timeline key bindings
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Fit      key.Binding
	Select   key.Binding
	Deselect key.Binding
}

// DefaultKeyMap returns the default timeline bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev item")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next item")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		PanLeft:  key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "scroll back")),
		PanRight: key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "scroll forward")),
		Fit:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit items")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Deselect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.ZoomIn, k.ZoomOut, k.Select}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Select, k.Deselect},
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.Fit},
	}
}
