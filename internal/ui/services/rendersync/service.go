package rendersync

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/logic"
)

// Timeline is the part of the timeline widget render sync drives
type Timeline interface {
	SetItems(items []domain.DisplayItem)
	SetWindow(min, max domain.Date, animate bool) tea.Cmd
}

// Selection answers membership questions about the Selection Set
type Selection interface {
	IsSelected(id domain.ID) bool
}

// Options tunes the viewport policy
type Options struct {
	BufferYears int
	Animate     bool
}

// Service recomputes the Display Collection and viewport whenever the
// selection changes
type Service struct {
	store     logic.EntityStore
	selection Selection
	timeline  Timeline
	opts      Options
	display   []domain.DisplayItem
	log       *zap.SugaredLogger
}

// NewService wires render sync to its collaborators
func NewService(store logic.EntityStore, selection Selection, timeline Timeline, opts Options, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		store:     store,
		selection: selection,
		timeline:  timeline,
		opts:      opts,
		display:   []domain.DisplayItem{},
		log:       log,
	}
}

// Sync replaces the timeline items with the current projection and, when
// there is anything to show, moves the window to cover it. An empty
// projection leaves the window where it is.
func (s *Service) Sync() tea.Cmd {
	s.display = Project(s.store.All(), s.selection.IsSelected)
	s.timeline.SetItems(s.display)

	min, max, ok := Window(s.display, s.opts.BufferYears)
	if !ok {
		s.log.Debugw("Render sync: empty selection, window unchanged")
		return nil
	}

	s.log.Debugw("Render sync",
		"items", len(s.display),
		"min", min.String(),
		"max", max.String(),
	)
	return s.timeline.SetWindow(min, max, s.opts.Animate)
}

// Display returns the last computed Display Collection
func (s *Service) Display() []domain.DisplayItem {
	return s.display
}
