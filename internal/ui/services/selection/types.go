package selection

import "mathtimeline/internal/domain"

// State holds selection state
type State struct {
	Selected map[domain.ID]bool
}

// Event types
type SelectionChangedEvent struct {
	Added   []domain.ID
	Removed []domain.ID
	Total   int
}

type SelectionClearedEvent struct{}
