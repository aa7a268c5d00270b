package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of the main content,
// which is greyed out around it
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	// Render the popup with its style without forcing width/height – keep it tight
	styledPopup := popupStyle.Render(popupContent)

	modalLines := strings.Split(styledPopup, "\n")
	if len(modalLines) > height-2 && height > 2 {
		modalLines = modalLines[:height-2]
	}
	modalW := lipgloss.Width(styledPopup)
	if modalW > width-2 && width > 2 {
		modalW = width - 2
	}
	x := (width - modalW) / 2
	y := (height - len(modalLines)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	base := strings.Split(ansi.Strip(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(base))
	for i, line := range base {
		row := i - y
		if row < 0 || row >= len(modalLines) {
			out[i] = gray.Render(line)
			continue
		}
		modal := ansi.Truncate(modalLines[row], modalW, "")
		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := skipCells(line, x+modalW)
		out[i] = gray.Render(left) + modal + gray.Render(right)
	}
	return strings.Join(out, "\n")
}

// skipCells drops the first n terminal cells of a plain string
func skipCells(s string, n int) string {
	w := 0
	for i, r := range s {
		if w >= n {
			return s[i:]
		}
		w += ansi.StringWidth(string(r))
	}
	return ""
}
