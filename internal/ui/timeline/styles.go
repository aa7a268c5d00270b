package timeline

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for one theme
type Styles struct {
	Header   lipgloss.Style
	Span     lipgloss.Style
	Bar      lipgloss.Style
	BarLabel lipgloss.Style
	Point    lipgloss.Style
	Label    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Axis     lipgloss.Style
	Tick     lipgloss.Style
	Empty    lipgloss.Style
}

// StylesFor returns the styles for "dark" or "light"
func StylesFor(theme string) Styles {
	accent := lipgloss.Color("33")
	bar := lipgloss.Color("24")
	text := lipgloss.Color("252")
	muted := lipgloss.Color("245")
	highlight := lipgloss.Color("214")
	if theme == "light" {
		accent = lipgloss.Color("25")
		bar = lipgloss.Color("153")
		text = lipgloss.Color("235")
		muted = lipgloss.Color("242")
		highlight = lipgloss.Color("166")
	}

	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Span:     lipgloss.NewStyle().Foreground(muted),
		Bar:      lipgloss.NewStyle().Foreground(bar),
		BarLabel: lipgloss.NewStyle().Background(bar).Foreground(text),
		Point:    lipgloss.NewStyle().Foreground(accent),
		Label:    lipgloss.NewStyle().Foreground(text),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(highlight),
		Axis:     lipgloss.NewStyle().Foreground(muted),
		Tick:     lipgloss.NewStyle().Foreground(muted),
		Empty:    lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
