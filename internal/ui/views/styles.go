package views

import (
	"github.com/charmbracelet/lipgloss"

	"mathtimeline/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Search        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	SelectionBg   lipgloss.Style
	Panel         lipgloss.Style
	PanelFocused  lipgloss.Style
	PanelTitle    lipgloss.Style
	Heading       lipgloss.Style
	FieldLabel    lipgloss.Style
	Tag           lipgloss.Style
	Image         lipgloss.Style
	InfoBox       lipgloss.Style
}

// NewStyles creates a new Styles instance for the "dark" or "light" theme
func NewStyles(theme string) *Styles {
	accent := lipgloss.Color("99")
	border := lipgloss.Color("241")
	text := lipgloss.Color("252")
	selBg := lipgloss.Color("238")
	if theme == "light" {
		accent = lipgloss.Color("55")
		border = lipgloss.Color("248")
		text = lipgloss.Color("235")
		selBg = lipgloss.Color("254")
	}

	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Search:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(selBg),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(selBg),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(border),
		Heading:    lipgloss.NewStyle().Bold(true).Foreground(text).Underline(true),
		FieldLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Tag:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Image:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(border),
	}
}

// KindColor returns the marker color for an entity kind
func KindColor(kind domain.Kind) string {
	switch kind {
	case domain.KindPerson:
		return "33" // blue
	case domain.KindEvent:
		return "78" // green
	default:
		return "245"
	}
}
