package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const emptyHint = "Nothing plotted yet. Check entities in the results list to add them."

// part is a run of plain text drawn with one style
type part struct {
	text  string
	style lipgloss.Style
}

// View renders the widget into its width and height
func (m *Model) View() string {
	width, height := m.width, m.height
	rows := height - 3 // header, axis, axis labels
	if rows < 1 {
		rows = 1
	}

	placements, lanes := place(m.items, m.window, width, m.opts.Stack)

	lines := make([]string, 0, height)
	lines = append(lines, m.renderHeader(width, lanes-rows))

	if len(m.items) == 0 {
		lines = append(lines, m.styles.Empty.Render(ansi.Truncate(emptyHint, width, "…")))
		rows--
	}

	byLane := make([][]placement, lanes)
	for _, p := range placements {
		byLane[p.lane] = append(byLane[p.lane], p)
	}
	for lane := 0; lane < rows; lane++ {
		if lane < lanes {
			lines = append(lines, m.renderLane(byLane[lane], width))
		} else {
			lines = append(lines, "")
		}
	}

	axis, labels := m.renderAxis(width)
	lines = append(lines, axis, labels)

	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader(width, hiddenLanes int) string {
	startYear := fromSeconds(m.window.start).Year()
	endYear := fromSeconds(m.window.end).Year()

	var spanLabel string
	if y := m.window.years(); y < 10 {
		spanLabel = fmt.Sprintf("%.1f yrs", y)
	} else {
		spanLabel = fmt.Sprintf("%d yrs", int(y+0.5))
	}

	info := fmt.Sprintf("%d – %d · %s", startYear, endYear, spanLabel)
	if len(m.items) > 0 {
		info += fmt.Sprintf(" · %d items", len(m.items))
	}
	if hiddenLanes > 0 {
		info += fmt.Sprintf(" · +%d lanes hidden", hiddenLanes)
	}

	header := m.styles.Header.Render("Timeline") + "  " + m.styles.Span.Render(info)
	return ansi.Truncate(header, width, "…")
}

func (m *Model) renderLane(ps []placement, width int) string {
	var b strings.Builder
	pos := 0

	for _, p := range ps {
		if pos >= width {
			break
		}
		cut := 0
		if p.col < pos {
			// lanes only overlap when stacking is off
			cut = pos - p.col
			if cut >= p.extent {
				continue
			}
		} else {
			b.WriteString(strings.Repeat(" ", p.col-pos))
			pos = p.col
		}

		for _, pt := range m.parts(p) {
			text := pt.text
			if cut > 0 {
				text, cut = dropCells(text, cut)
			}
			if text == "" {
				continue
			}
			remaining := width - pos
			if remaining <= 0 {
				break
			}
			if ansi.StringWidth(text) > remaining {
				text = ansi.Truncate(text, remaining, "…")
			}
			b.WriteString(pt.style.Render(text))
			pos += ansi.StringWidth(text)
		}
	}
	return b.String()
}

// parts splits a placement into styled runs
func (m *Model) parts(p placement) []part {
	item := m.items[p.item]
	labelStyle := m.styles.Label
	barStyle := m.styles.Bar
	inside := m.styles.BarLabel

	if m.isSelected(p.item) {
		labelStyle = m.styles.Selected.Inherit(labelStyle)
		inside = m.styles.Selected.Inherit(inside)
	}
	if m.focused && m.isCursor(p.item) {
		labelStyle = m.styles.Cursor.Inherit(labelStyle)
		inside = m.styles.Cursor.Inherit(inside)
	}

	if !item.IsRange() {
		return []part{
			{text: "◆", style: m.styles.Point},
			{text: " " + p.label, style: labelStyle},
		}
	}

	labelWidth := ansi.StringWidth(p.label)
	if p.bar >= labelWidth+2 {
		text := " " + p.label + strings.Repeat(" ", p.bar-labelWidth-1)
		return []part{{text: text, style: inside}}
	}
	return []part{
		{text: strings.Repeat("█", p.bar), style: barStyle},
		{text: " " + p.label, style: labelStyle},
	}
}

func (m *Model) renderAxis(width int) (string, string) {
	line := []rune(strings.Repeat("─", width))
	labels := []rune(strings.Repeat(" ", width))

	nextFree := 0
	for _, t := range ticks(m.window, width) {
		if t.col >= 0 && t.col < width {
			line[t.col] = '┬'
		}
		text := []rune(strconv.Itoa(t.year))
		at := t.col
		if at+len(text) > width {
			at = width - len(text)
		}
		if at < nextFree || at < 0 {
			continue
		}
		copy(labels[at:], text)
		nextFree = at + len(text) + 1
	}

	return m.styles.Axis.Render(string(line)), m.styles.Tick.Render(strings.TrimRight(string(labels), " "))
}

func (m *Model) isSelected(item int) bool {
	id := m.items[item].ID
	for _, s := range m.selected {
		if s == id {
			return true
		}
	}
	return false
}

func (m *Model) isCursor(item int) bool {
	return len(m.order) > 0 && m.order[m.cursor] == item
}

// dropCells removes up to n leading cells from s and returns what is left
// of s and of n
func dropCells(s string, n int) (string, int) {
	for i, r := range s {
		if n <= 0 {
			return s[i:], 0
		}
		n -= ansi.StringWidth(string(r))
	}
	return "", n
}
