package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/x/ansi"

	"mathtimeline/internal/domain"
)

// placement is one item positioned on screen
type placement struct {
	item   int // index into Model.items
	col    int // first cell
	bar    int // cells covered by the bar, 0 for points
	label  string
	extent int // cells used by bar plus label
	lane   int
}

// column maps a time to a cell in [0, width)
func column(sec float64, w span, width int) int {
	if width <= 1 || w.width() <= 0 {
		return 0
	}
	return int(math.Floor((sec - w.start) / w.width() * float64(width-1)))
}

// place positions the visible items and assigns lanes. With stack, items
// go to the first lane where they fit without touching a neighbour; without
// it everything shares lane 0.
func place(items []domain.DisplayItem, w span, width int, stack bool) ([]placement, int) {
	var out []placement
	for i, it := range items {
		s, e := toSeconds(it.Start), toSeconds(it.Last())
		if e < w.start || s > w.end {
			continue
		}

		p := placement{item: i, label: it.Content}
		if it.IsRange() {
			c0 := clampInt(column(s, w, width), 0, width-1)
			c1 := clampInt(column(e, w, width), 0, width-1)
			p.col = c0
			p.bar = c1 - c0 + 1
			if p.bar >= ansi.StringWidth(p.label)+2 {
				p.extent = p.bar
			} else {
				p.extent = p.bar + 1 + ansi.StringWidth(p.label)
			}
		} else {
			p.col = clampInt(column(s, w, width), 0, width-1)
			p.extent = 2 + ansi.StringWidth(p.label)
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].col < out[b].col })

	if !stack {
		if len(out) == 0 {
			return out, 0
		}
		return out, 1
	}

	var laneEnds []int // first free cell per lane
	for i := range out {
		p := &out[i]
		lane := -1
		for l, end := range laneEnds {
			if p.col > end {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, 0)
		}
		p.lane = lane
		laneEnds[lane] = p.col + p.extent
	}
	return out, len(laneEnds)
}

// tick is a labelled year on the axis
type tick struct {
	col  int
	year int
}

// niceStep picks a 1/2/5 x 10^k year step giving roughly target ticks
func niceStep(years float64, target int) int {
	if target < 1 {
		target = 1
	}
	raw := years / float64(target)
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, f := range []float64{1, 2, 5, 10} {
		if f*mag >= raw {
			return int(f * mag)
		}
	}
	return int(10 * mag)
}

// ticks returns axis ticks at January 1st of years divisible by the step
func ticks(w span, width int) []tick {
	step := niceStep(w.years(), width/12)
	first := fromSeconds(w.start).Year()
	last := fromSeconds(w.end).Year()

	var out []tick
	for y := floorDiv(first, step) * step; y <= last; y += step {
		sec := float64(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC).Unix())
		if sec < w.start || sec > w.end {
			continue
		}
		out = append(out, tick{col: column(sec, w, width), year: y})
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
