package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/ui/logic"
)

// Placeholder texts for the results area
const (
	NoResultsText = "No results found"
	LoadErrorText = "Error loading data"
	LoadingText   = "Loading data…"
)

// ResultRow is one labeled checkbox in the results list. Checked is a
// snapshot taken when the rows were built.
type ResultRow struct {
	ID      domain.ID
	Label   string
	Kind    domain.Kind
	Checked bool
}

// BuildRows creates one row per entity, checked if selected right now
func BuildRows(entities []domain.Entity, isSelected func(domain.ID) bool) []ResultRow {
	rows := make([]ResultRow, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, ResultRow{
			ID:      e.EntityID(),
			Label:   e.DisplayName(),
			Kind:    e.Kind(),
			Checked: isSelected(e.EntityID()),
		})
	}
	return rows
}

// ResultsState is what the results list needs to render
type ResultsState struct {
	Rows    []ResultRow
	Cursor  int
	Offset  int
	Height  int
	Width   int
	Query   string
	Focused bool
}

// ResultsRenderer renders the checkbox list
type ResultsRenderer struct {
	styles *Styles
}

// NewResultsRenderer creates a new results renderer
func NewResultsRenderer(styles *Styles) *ResultsRenderer {
	return &ResultsRenderer{styles: styles}
}

// Render draws the visible rows with scroll indicators
func (r *ResultsRenderer) Render(state ResultsState) string {
	if len(state.Rows) == 0 {
		return r.styles.Dim.Render(NoResultsText)
	}

	height := state.Height
	if height < 1 {
		height = 1
	}
	offset := state.Offset
	if offset > len(state.Rows)-1 {
		offset = len(state.Rows) - 1
	}
	if offset < 0 {
		offset = 0
	}

	needsTopIndicator := offset > 0
	effectiveHeight := height
	if needsTopIndicator {
		effectiveHeight--
	}
	needsBottomIndicator := offset+effectiveHeight < len(state.Rows)
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	end := offset + effectiveHeight
	if end > len(state.Rows) {
		end = len(state.Rows)
	}
	for i := offset; i < end; i++ {
		lines = append(lines, r.renderRow(state.Rows[i], state.Focused && i == state.Cursor, state.Query, state.Width))
	}

	if needsBottomIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Rows)-end)))
	}

	return strings.Join(lines, "\n")
}

func (r *ResultsRenderer) renderRow(row ResultRow, isCursor bool, query string, width int) string {
	bg := lipgloss.NewStyle()
	if isCursor {
		bg = r.styles.SelectionBg
	}

	box := "[ ]"
	if row.Checked {
		box = "[x]"
	}

	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(KindColor(row.Kind))).Inherit(bg)
	glyph := "●"
	if row.Kind == domain.KindEvent {
		glyph = "◆"
	}

	label := row.Label
	if width > 8 && ansi.StringWidth(label) > width-8 {
		label = ansi.Truncate(label, width-8, "…")
	}

	line := bg.Render(box+" ") + marker.Render(glyph) + bg.Render(" ") + r.highlight(label, query, bg)
	if isCursor && width > 0 {
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += bg.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// highlight marks the first match of the query inside the label
func (r *ResultsRenderer) highlight(label, query string, base lipgloss.Style) string {
	start, end := logic.MatchSpan(label, query)
	if start < 0 {
		return base.Render(label)
	}
	return base.Render(label[:start]) +
		r.styles.Highlight.Inherit(base).Render(label[start:end]) +
		base.Render(label[end:])
}

func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
