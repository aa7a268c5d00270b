// Package timeline is a zoomable terminal timeline widget. It plots display
// items on a horizontal time axis, lets the user move between them and emits
// SelectMsg when one is chosen.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mathtimeline/internal/domain"
)

// SelectMsg reports the ids chosen on the timeline. An empty IDs slice means
// the selection was cleared.
type SelectMsg struct {
	IDs []domain.ID
}

// frameMsg advances a window animation. seq ties it to one animation so
// frames from a superseded one are dropped.
type frameMsg struct {
	seq int
}

// span is a visible window in Unix seconds
type span struct {
	start, end float64
}

func (s span) width() float64  { return s.end - s.start }
func (s span) center() float64 { return (s.start + s.end) / 2 }

// Model is the timeline widget
type Model struct {
	opts   Options
	keys   KeyMap
	styles Styles

	items []domain.DisplayItem
	order []int // item indices sorted by start, the cursor walks this
	// cursor indexes order
	cursor   int
	selected []domain.ID

	window span

	// animation state
	from, to  span
	frame     int
	seq       int
	animating bool

	width, height int
	focused       bool
}

// New creates a timeline with the given options
func New(opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		opts:   opts,
		keys:   DefaultKeyMap(),
		styles: StylesFor(opts.Theme),
		width:  80,
		height: opts.MinHeight,
	}
	m.window = m.clamp(span{start: toSeconds(opts.Start), end: toSeconds(opts.End)})
	return m
}

// Options returns the effective options
func (m *Model) Options() Options { return m.opts }

// Keys returns the key bindings, for help rendering
func (m *Model) Keys() KeyMap { return m.keys }

// SetItems replaces every item. Selection is dropped and the cursor returns
// to the earliest item.
func (m *Model) SetItems(items []domain.DisplayItem) {
	m.items = append([]domain.DisplayItem(nil), items...)
	m.order = make([]int, len(m.items))
	for i := range m.order {
		m.order[i] = i
	}
	sort.SliceStable(m.order, func(a, b int) bool {
		return m.items[m.order[a]].Start.Before(m.items[m.order[b]].Start)
	})
	m.cursor = 0
	m.selected = nil
}

// Items returns the current items
func (m *Model) Items() []domain.DisplayItem {
	return m.items
}

// SetWindow moves the visible window to [min, max]. The span is clamped to
// the zoom bounds around its center. With animate the move is spread over
// tick frames and the returned command drives them.
func (m *Model) SetWindow(min, max domain.Date, animate bool) tea.Cmd {
	target := m.clamp(span{start: toSeconds(min), end: toSeconds(max)})
	return m.moveTo(target, animate)
}

// Window returns the currently visible window
func (m *Model) Window() (domain.Date, domain.Date) {
	return fromSeconds(m.window.start), fromSeconds(m.window.end)
}

// Target returns where the window is heading, which is the current window
// when no animation runs
func (m *Model) Target() (domain.Date, domain.Date) {
	if m.animating {
		return fromSeconds(m.to.start), fromSeconds(m.to.end)
	}
	return m.Window()
}

// Animating reports whether a window animation is in progress
func (m *Model) Animating() bool {
	return m.animating
}

// ClearSelection empties the selection without emitting SelectMsg
func (m *Model) ClearSelection() {
	m.selected = nil
}

// Selection returns the selected ids
func (m *Model) Selection() []domain.ID {
	return append([]domain.ID(nil), m.selected...)
}

// Cursor returns the item under the cursor
func (m *Model) Cursor() (domain.DisplayItem, bool) {
	if len(m.order) == 0 {
		return domain.DisplayItem{}, false
	}
	return m.items[m.order[m.cursor]], true
}

// Focus makes the widget react to keys
func (m *Model) Focus() { m.focused = true }

// Blur stops the widget reacting to keys
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the widget has focus
func (m *Model) Focused() bool { return m.focused }

// SetSize sets the area the widget renders into
func (m *Model) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < m.opts.MinHeight {
		height = m.opts.MinHeight
	}
	m.width, m.height = width, height
}

// Update handles keys while focused and animation frames at all times
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		return m.step(msg)
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Next):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.ZoomIn):
		m.Zoom(0.5)
	case key.Matches(msg, m.keys.ZoomOut):
		m.Zoom(2)
	case key.Matches(msg, m.keys.PanLeft):
		m.Pan(-1)
	case key.Matches(msg, m.keys.PanRight):
		m.Pan(1)
	case key.Matches(msg, m.keys.Fit):
		return m.Fit()
	case key.Matches(msg, m.keys.Select):
		return m.selectCursor()
	case key.Matches(msg, m.keys.Deselect):
		return m.deselect()
	}
	return nil
}

// Zoom scales the window span by factor around its center
func (m *Model) Zoom(factor float64) {
	base := m.currentTarget()
	c, half := base.center(), base.width()*factor/2
	m.moveTo(m.clamp(span{start: c - half, end: c + half}), false)
}

// Pan shifts the window by a sixth of its span per step; negative goes back
// in time
func (m *Model) Pan(steps int) {
	base := m.currentTarget()
	d := base.width() / 6 * float64(steps)
	m.moveTo(span{start: base.start + d, end: base.end + d}, false)
}

// Fit animates the window to cover every item with a small margin
func (m *Model) Fit() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, it := range m.items {
		lo = math.Min(lo, toSeconds(it.Start))
		hi = math.Max(hi, toSeconds(it.Last()))
	}
	pad := (hi - lo) * 0.05
	return m.moveTo(m.clamp(span{start: lo - pad, end: hi + pad}), true)
}

func (m *Model) selectCursor() tea.Cmd {
	item, ok := m.Cursor()
	if !ok {
		return nil
	}
	for _, id := range m.selected {
		if id == item.ID {
			return nil
		}
	}
	m.selected = []domain.ID{item.ID}
	ids := m.Selection()
	return func() tea.Msg { return SelectMsg{IDs: ids} }
}

func (m *Model) deselect() tea.Cmd {
	m.selected = nil
	return func() tea.Msg { return SelectMsg{} }
}

// moveCursor steps through items in start order and pans to keep the
// cursor item in view
func (m *Model) moveCursor(delta int) {
	if len(m.order) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}

	item := m.items[m.order[m.cursor]]
	s, e := toSeconds(item.Start), toSeconds(item.Last())
	w := m.currentTarget()
	if s >= w.start && s <= w.end {
		return
	}
	half := w.width() / 2
	c := s
	if e > s && e-s < w.width() {
		c = (s + e) / 2
	}
	m.moveTo(span{start: c - half, end: c + half}, false)
}

func (m *Model) currentTarget() span {
	if m.animating {
		return m.to
	}
	return m.window
}

func (m *Model) moveTo(target span, animate bool) tea.Cmd {
	if !animate || m.opts.Frames == 0 {
		m.animating = false
		m.seq++
		m.window = target
		return nil
	}
	m.from, m.to = m.window, target
	m.frame = 0
	m.seq++
	m.animating = true
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}

func (m *Model) step(msg frameMsg) tea.Cmd {
	if !m.animating || msg.seq != m.seq {
		return nil
	}
	m.frame++
	if m.frame >= m.opts.Frames {
		m.window = m.to
		m.animating = false
		return nil
	}
	t := easeOut(float64(m.frame) / float64(m.opts.Frames))
	m.window = span{
		start: m.from.start + (m.to.start-m.from.start)*t,
		end:   m.from.end + (m.to.end-m.from.end)*t,
	}
	return m.tick()
}

func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// clamp keeps the span inside the zoom bounds, preserving its center
func (m *Model) clamp(s span) span {
	if s.end < s.start {
		s.start, s.end = s.end, s.start
	}
	lo, hi := m.opts.ZoomMin*secondsPerYear, m.opts.ZoomMax*secondsPerYear
	w := s.width()
	switch {
	case w < lo:
		w = lo
	case w > hi:
		w = hi
	default:
		return s
	}
	c := s.center()
	return span{start: c - w/2, end: c + w/2}
}

func toSeconds(d domain.Date) float64 {
	return float64(d.Unix())
}

func fromSeconds(sec float64) domain.Date {
	return domain.DateFromTime(time.Unix(int64(math.Floor(sec)), 0))
}

// years returns the window width in years
func (s span) years() float64 {
	return s.width() / secondsPerYear
}
