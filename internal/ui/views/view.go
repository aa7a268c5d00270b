package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Pane identifies the focusable regions of the screen
type Pane int

const (
	PaneResults Pane = iota
	PaneTimeline
)

// LoadState tracks the initial dataset fetch
type LoadState int

const (
	LoadPending LoadState = iota
	LoadDone
	LoadFailed
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Focus            Pane
	LoadState        LoadState
	LoadError        string
	Source           string
	SearchView       string
	Query            string
	Rows             []ResultRow
	Cursor           int
	ViewportOffset   int
	TimelineView     string
	DetailView       string // rendered detail panel body, see RenderDetail
	MatchCount       int
	SelectedCount    int
	TotalCount       int
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
	HelpKeys         help.KeyMap
}

// Layout is the inner size of every panel for a terminal size
type Layout struct {
	ResultsWidth   int
	ResultsRows    int // rows of checkboxes, below the panel title
	DetailWidth    int
	DetailHeight   int
	TimelineWidth  int
	TimelineHeight int // zero when no timeline is shown
}

const (
	chromeLines   = 3 // title, search box, footer
	panelFrameW   = 4 // border plus horizontal padding
	panelFrameH   = 2
	minMidHeight  = 5
	minResultsW   = 28
	minDetailW    = 20
	defaultWidth  = 80
	defaultHeight = 24
)

// ComputeLayout splits the screen between the results, detail and timeline
// panels. timelineMin is the smallest inner height for the timeline.
func ComputeLayout(width, height, timelineMin int, withTimeline bool) Layout {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	contentW := width - 2 // main padding
	rest := height - chromeLines
	if rest < minMidHeight {
		rest = minMidHeight
	}

	var l Layout
	mid := rest
	if withTimeline {
		tl := rest * 2 / 5
		if tl < timelineMin+panelFrameH {
			tl = timelineMin + panelFrameH
		}
		if tl > rest-minMidHeight {
			tl = rest - minMidHeight
		}
		if tl < panelFrameH+1 {
			tl = panelFrameH + 1
		}
		mid = rest - tl
		l.TimelineWidth = contentW - panelFrameW
		l.TimelineHeight = tl - panelFrameH
	}
	if mid < panelFrameH+2 {
		mid = panelFrameH + 2
	}

	resultsW := contentW * 2 / 5
	if resultsW < minResultsW {
		resultsW = minResultsW
	}
	if resultsW > contentW-minDetailW {
		resultsW = contentW - minDetailW
	}
	l.ResultsWidth = resultsW - panelFrameW
	l.ResultsRows = mid - panelFrameH - 1
	l.DetailWidth = contentW - resultsW - panelFrameW
	l.DetailHeight = mid - panelFrameH - 1
	return l
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	resultsRender *ResultsRenderer
	detailRender  *DetailRenderer
	popupRender   *PopupRenderer
	timelineMin   int
}

// NewRenderer creates a new renderer
func NewRenderer(theme string, timelineMin int) *Renderer {
	styles := NewStyles(theme)
	return &Renderer{
		styles:        styles,
		resultsRender: NewResultsRenderer(styles),
		detailRender:  NewDetailRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
		timelineMin:   timelineMin,
	}
}

// Styles exposes the style set, e.g. for the search input
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Layout returns the panel sizes for the given state
func (r *Renderer) Layout(state ViewState) Layout {
	return ComputeLayout(state.Width, state.Height, r.timelineMin, state.LoadState == LoadDone)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width, height := state.Width, state.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	layout := r.Layout(state)

	lines := []string{
		r.renderTitle(state, width),
		state.SearchView,
	}

	results := r.panel("Results", r.renderResults(state, layout), layout.ResultsWidth, layout.ResultsRows+1,
		state.Focus == PaneResults)
	detail := r.panel("Details", state.DetailView, layout.DetailWidth, layout.DetailHeight+1, false)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, results, detail))

	if layout.TimelineHeight > 0 {
		lines = append(lines, r.panel("", state.TimelineView, layout.TimelineWidth, layout.TimelineHeight,
			state.Focus == PaneTimeline))
	}

	lines = append(lines, r.renderFooter(state))

	mainStyle := r.styles.Main.MaxHeight(height).MaxWidth(width)
	finalContent := mainStyle.Render(strings.Join(lines, "\n"))

	if state.ShowHelp {
		helpContent := r.renderHelpContent(height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, height, width, r.styles.InfoBox)
	}
	return finalContent
}

func matchLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// renderTitle builds the title line with right-aligned counters
func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("mathtimeline")

	var right []string
	if state.LoadState == LoadDone {
		if state.Query != "" {
			right = append(right, matchLabel(state.MatchCount))
		}
		right = append(right, fmt.Sprintf("%d/%d selected", state.SelectedCount, state.TotalCount))
	}
	if state.Source != "" {
		right = append(right, state.Source)
	}
	if len(right) == 0 {
		return logo
	}
	rightContent := r.styles.Dim.Render(strings.Join(right, " | "))

	paddingWidth := width - 2 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderResults(state ViewState, layout Layout) string {
	switch state.LoadState {
	case LoadPending:
		return r.styles.Dim.Render(LoadingText)
	case LoadFailed:
		msg := r.styles.StatusError.Render(LoadErrorText)
		if state.LoadError != "" {
			msg += "\n" + r.styles.Dim.Render(state.LoadError)
		}
		return msg
	}
	return r.resultsRender.Render(ResultsState{
		Rows:    state.Rows,
		Cursor:  state.Cursor,
		Offset:  state.ViewportOffset,
		Height:  layout.ResultsRows,
		Width:   layout.ResultsWidth,
		Query:   state.Query,
		Focused: state.Focus == PaneResults,
	})
}

// RenderDetail renders the detail panel body, or the placeholder when d is nil
func (r *Renderer) RenderDetail(d *Detail, width int) string {
	if d == nil {
		return r.detailRender.RenderPlaceholder(width)
	}
	return r.detailRender.Render(*d, width)
}

func (r *Renderer) renderFooter(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.Status.Render(state.StatusMessage)
	}
	if state.HelpKeys != nil && !state.ShowHelp {
		return state.HelpModel.View(state.HelpKeys)
	}
	return r.styles.Help.Render("Press ? for help")
}

// panel frames content in a bordered box of the given inner size, with an
// optional title row
func (r *Renderer) panel(title, content string, width, height int, focused bool) string {
	style := r.styles.Panel
	if focused {
		style = r.styles.PanelFocused
	}
	if title != "" {
		content = r.styles.PanelTitle.Render(title) + "\n" + content
	}
	return style.
		Width(width + 2).
		Height(height).
		MaxHeight(height + panelFrameH).
		Render(fitLines(content, height, width))
}

// fitLines truncates content to at most height lines of width cells
func fitLines(content string, height, width int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width && width > 0 {
			lines[i] = truncate(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	entry := func(key, desc string) string {
		return fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-11s", key)), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Mathtimeline Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(entry("/", "Search by name or tag"))
	help.WriteString(entry("Enter, Tab", "Keep the query and return to the list"))
	help.WriteString(entry("↑/↓", "Move through results while typing"))
	help.WriteString(entry("Ctrl+U", "Erase the query"))
	help.WriteString(entry("Esc", "Clear the query"))

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(entry("↑/↓, j/k", "Navigate up/down"))
	help.WriteString(entry("PgUp/PgDn", "Page up/down"))
	help.WriteString(entry("gg/G", "Go to top/bottom"))
	help.WriteString(entry("Space, x", "Toggle the checkbox"))
	help.WriteString(entry("a", "Select all shown, or clear the selection"))
	help.WriteString(entry("Tab", "Switch between results and timeline"))

	help.WriteString(sectionStyle.Render("Timeline"))
	help.WriteString("\n")
	help.WriteString(entry("←/→, h/l", "Previous/next item"))
	help.WriteString(entry("Enter", "Show details of the item"))
	help.WriteString(entry("Esc", "Clear the details"))
	help.WriteString(entry("+/-", "Zoom in/out"))
	help.WriteString(entry("</>", "Pan left/right"))
	help.WriteString(entry("f", "Fit the selection"))

	help.WriteString(sectionStyle.Render("Details"))
	help.WriteString("\n")
	help.WriteString(entry("[ ]", "Scroll the details"))
	help.WriteString(entry("p", "Open the details (or the results) in a pager"))
	help.WriteString(entry("y", "Copy the details"))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(entry("?", "Toggle this help"))
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render(fmt.Sprintf("%-11s", "q")), descStyle.Render("Quit")))

	// Split into lines for scrolling
	lines := strings.Split(help.String(), "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}

// HelpLineCount is the number of lines in the help popup, for scroll bounds
func (r *Renderer) HelpLineCount() int {
	return strings.Count(r.renderHelpContent(1<<16, 0), "\n") + 1
}
