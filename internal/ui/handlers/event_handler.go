package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mathtimeline/internal/eventbus"
	"mathtimeline/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state  *state.AppState
	reload func() tea.Cmd
	log    *zap.SugaredLogger
}

// NewEventHandler creates a new event handler. reload starts a dataset
// reload and may return nil when one is already running.
func NewEventHandler(appState *state.AppState, reload func() tea.Cmd, log *zap.SugaredLogger) *EventHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &EventHandler{
		state:  appState,
		reload: reload,
		log:    log,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DatasetChangedEvent:
		if !h.state.Ready() {
			// nothing loaded yet to refresh; an explicit reload is needed
			return nil
		}
		h.log.Infow("Dataset changed on disk", "path", e.Path)
		h.state.SetStatus("Dataset changed, reloading...")
		return h.reload()

	case eventbus.ErrorEvent:
		h.log.Errorw("Background error", "message", e.Message, "error", e.Err)
		h.state.SetError(fmt.Sprintf("Error: %s", e.Message))
	}

	return nil
}
