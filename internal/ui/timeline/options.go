package timeline

import (
	"time"

	"mathtimeline/internal/domain"
)

// secondsPerYear is the mean Gregorian year
const secondsPerYear = 365.2425 * 24 * 60 * 60

// Options configures the timeline widget
type Options struct {
	Stack     bool    // stack overlapping items into lanes
	ZoomMin   float64 // narrowest visible span, in years
	ZoomMax   float64 // widest visible span, in years
	MinHeight int     // rows reserved even when there is little to show
	Theme     string  // "dark" or "light"

	// Start and End form the window shown before anything is selected
	Start domain.Date
	End   domain.Date

	Frames        int           // animation frames for SetWindow(animate=true)
	FrameInterval time.Duration // delay between frames
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	now := domain.DateFromTime(time.Now())
	return Options{
		Stack:         true,
		ZoomMin:       1,
		ZoomMax:       5000,
		MinHeight:     8,
		Theme:         "dark",
		Start:         now.AddYears(-100),
		End:           now.AddYears(10),
		Frames:        12,
		FrameInterval: 16 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ZoomMin <= 0 {
		o.ZoomMin = d.ZoomMin
	}
	if o.ZoomMax < o.ZoomMin {
		o.ZoomMax = d.ZoomMax
	}
	if o.MinHeight <= 0 {
		o.MinHeight = d.MinHeight
	}
	if o.Start.IsZero() && o.End.IsZero() {
		o.Start, o.End = d.Start, d.End
	}
	if o.Frames < 0 {
		o.Frames = 0
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = d.FrameInterval
	}
	return o
}
