package navigation

import (
	"mathtimeline/internal/ui/services/events"
)

// Service moves the cursor through the result rows and keeps it visible
type Service struct {
	state   *State
	bus     events.EventBus
	countFn func() int // Function returning the number of rows
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Cursor:         0,
			ViewportOffset: 0,
			ViewportHeight: 10, // Default, will be updated
			MaxIndex:       0,
		},
		bus: bus,
	}
}

// SetCountFunction sets the function returning the row count
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight sets how many rows fit in the results pane
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refreshMax()
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.moveTo(s.state.Cursor - 1)
	case DirectionDown:
		s.moveTo(s.state.Cursor + 1)
	case DirectionPageUp:
		s.moveTo(s.state.Cursor - (s.state.ViewportHeight - 1))
	case DirectionPageDown:
		s.moveTo(s.state.Cursor + (s.state.ViewportHeight - 1))
	case DirectionHome:
		s.moveTo(0)
	case DirectionEnd:
		s.moveTo(s.state.MaxIndex)
	}

	if oldCursor != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// Reset moves the cursor back to the first row, used when the rows are
// replaced
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
	s.refreshMax()
}

// Clamp pulls the cursor back inside the current rows
func (s *Service) Clamp() {
	s.refreshMax()
	s.moveTo(s.state.Cursor)
}

func (s *Service) refreshMax() {
	if s.countFn == nil {
		return
	}
	s.state.MaxIndex = s.countFn() - 1
	if s.state.MaxIndex < 0 {
		s.state.MaxIndex = 0
	}
}

func (s *Service) moveTo(index int) {
	if index < 0 {
		index = 0
	}
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	s.state.Cursor = index
	s.ensureVisible()
}

func (s *Service) ensureVisible() {
	offset := s.state.ViewportOffset
	if s.state.Cursor < offset {
		offset = s.state.Cursor
	} else if s.state.Cursor >= offset+s.state.ViewportHeight {
		offset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if offset != s.state.ViewportOffset {
		s.state.ViewportOffset = offset
		s.bus.Publish(ViewportChangedEvent{
			Offset: s.state.ViewportOffset,
			Height: s.state.ViewportHeight,
		})
	}
}
