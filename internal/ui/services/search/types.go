package search

import "mathtimeline/internal/domain"

// State holds search state
type State struct {
	Query   string
	Results []domain.Entity // Visible subset for Query
}

// SearchCompletedEvent is published after every search run
type SearchCompletedEvent struct {
	Query      string
	MatchCount int
}
