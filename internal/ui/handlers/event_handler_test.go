package handlers

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"mathtimeline/internal/eventbus"
	"mathtimeline/internal/ui/state"
	"mathtimeline/internal/ui/views"
)

type reloadMsg struct{}

func newHandler() (*EventHandler, *state.AppState, *int) {
	st := state.NewAppState("data.json")
	calls := 0
	h := NewEventHandler(st, func() tea.Cmd {
		calls++
		return func() tea.Msg { return reloadMsg{} }
	}, nil)
	return h, st, &calls
}

func TestDatasetChangedReloadsWhenReady(t *testing.T) {
	h, st, calls := newHandler()
	st.LoadState = views.LoadDone

	cmd := h.HandleEvent(eventbus.DatasetChangedEvent{Path: "/tmp/data.json"})
	if assert.NotNil(t, cmd) {
		assert.Equal(t, reloadMsg{}, cmd())
	}
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "Dataset changed, reloading...", st.StatusMessage)
}

func TestDatasetChangedIgnoredBeforeLoad(t *testing.T) {
	h, st, calls := newHandler()
	st.LoadState = views.LoadFailed

	assert.Nil(t, h.HandleEvent(eventbus.DatasetChangedEvent{Path: "x"}))
	assert.Zero(t, *calls)
}

func TestErrorEventSetsStatus(t *testing.T) {
	h, st, _ := newHandler()

	assert.Nil(t, h.HandleEvent(eventbus.ErrorEvent{Message: "watch failed", Err: errors.New("boom")}))
	assert.True(t, st.StatusIsError)
	assert.Equal(t, "Error: watch failed", st.StatusMessage)
}
