package ui

import (
	"mathtimeline/internal/domain"
	"mathtimeline/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// datasetLoadedMsg carries a decoded dataset into the update loop
type datasetLoadedMsg struct {
	source  string
	dataset *domain.Dataset
	reload  bool
}

// loadFailedMsg reports a failed fetch or decode
type loadFailedMsg struct {
	source string
	err    error
	reload bool
}

// pagerDoneMsg is sent when the pager exits
type pagerDoneMsg struct {
	err error
}

// copyDoneMsg is sent after copying the detail text
type copyDoneMsg struct {
	err error
}
