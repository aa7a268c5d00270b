package state

import (
	"mathtimeline/internal/ui/views"
)

// AppState contains the UI state not owned by a service
type AppState struct {
	// Dataset
	Source    string
	LoadState views.LoadState
	LoadErr   error
	Loading   bool // a load or reload is in flight

	// Results
	Rows       []views.ResultRow
	MatchCount int // result count of the last search

	// Detail panel; nil shows the placeholder
	Detail *views.Detail

	// UI state
	Focus            views.Pane
	ShowHelp         bool
	HelpScrollOffset int    // scroll offset for help popup
	StatusMessage    string // status bar message
	StatusIsError    bool
}

// NewAppState creates a new application state
func NewAppState(source string) *AppState {
	return &AppState{
		Source:    source,
		LoadState: views.LoadPending,
		Rows:      []views.ResultRow{},
		Focus:     views.PaneResults,
	}
}

// Ready reports whether the dataset is loaded and the UI is interactive
func (s *AppState) Ready() bool {
	return s.LoadState == views.LoadDone
}

// SetStatus shows a message in the status bar
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// SetError shows an error in the status bar
func (s *AppState) SetError(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = true
}

// ClearStatus removes the status message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

// SetRows replaces all rendered rows
func (s *AppState) SetRows(rows []views.ResultRow) {
	if rows == nil {
		rows = []views.ResultRow{}
	}
	s.Rows = rows
}

// Row returns the row at index
func (s *AppState) Row(index int) (views.ResultRow, bool) {
	if index < 0 || index >= len(s.Rows) {
		return views.ResultRow{}, false
	}
	return s.Rows[index], true
}

// SetRowChecked updates the checkbox of a single row
func (s *AppState) SetRowChecked(index int, checked bool) {
	if index >= 0 && index < len(s.Rows) {
		s.Rows[index].Checked = checked
	}
}

// SetAllChecked updates every rendered checkbox
func (s *AppState) SetAllChecked(checked bool) {
	for i := range s.Rows {
		s.Rows[i].Checked = checked
	}
}

// ToggleFocus switches between the results list and the timeline
func (s *AppState) ToggleFocus() views.Pane {
	if s.Focus == views.PaneResults {
		s.Focus = views.PaneTimeline
	} else {
		s.Focus = views.PaneResults
	}
	return s.Focus
}
