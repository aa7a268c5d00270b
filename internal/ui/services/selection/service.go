package selection

import (
	"sort"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/ui/services/events"
)

// Service owns the Selection Set: the ids currently plotted on the timeline
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Selected: make(map[domain.ID]bool),
		},
		bus: bus,
	}
}

// Toggle flips membership of id and reports whether it is now selected
func (s *Service) Toggle(id domain.ID) bool {
	var added, removed []domain.ID

	if s.state.Selected[id] {
		delete(s.state.Selected, id)
		removed = append(removed, id)
	} else {
		s.state.Selected[id] = true
		added = append(added, id)
	}

	s.bus.Publish(SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   len(s.state.Selected),
	})

	return s.state.Selected[id]
}

// Select adds ids to the selection, publishing once if anything changed
func (s *Service) Select(ids ...domain.ID) {
	var added []domain.ID
	for _, id := range ids {
		if !s.state.Selected[id] {
			s.state.Selected[id] = true
			added = append(added, id)
		}
	}

	if len(added) > 0 {
		s.bus.Publish(SelectionChangedEvent{
			Added: added,
			Total: len(s.state.Selected),
		})
	}
}

// DeselectAll clears all selections
func (s *Service) DeselectAll() {
	s.state.Selected = make(map[domain.ID]bool)

	s.bus.Publish(SelectionClearedEvent{})
}

// Retain drops selected ids for which keep returns false, e.g. entities
// that disappeared on reload
func (s *Service) Retain(keep func(domain.ID) bool) {
	var removed []domain.ID
	for id := range s.state.Selected {
		if !keep(id) {
			delete(s.state.Selected, id)
			removed = append(removed, id)
		}
	}

	if len(removed) > 0 {
		sortIDs(removed)
		s.bus.Publish(SelectionChangedEvent{
			Removed: removed,
			Total:   len(s.state.Selected),
		})
	}
}

// IsSelected checks if an entity is selected
func (s *Service) IsSelected(id domain.ID) bool {
	return s.state.Selected[id]
}

// GetSelected returns all selected ids in sorted order
func (s *Service) GetSelected() []domain.ID {
	selected := make([]domain.ID, 0, len(s.state.Selected))
	for id := range s.state.Selected {
		selected = append(selected, id)
	}
	sortIDs(selected)
	return selected
}

// GetCount returns the number of selected items
func (s *Service) GetCount() int {
	return len(s.state.Selected)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.Selected) > 0
}

func sortIDs(ids []domain.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
