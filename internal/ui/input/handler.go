package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mathtimeline/internal/ui/input/modes"
	"mathtimeline/internal/ui/input/types"
)

// Handler turns key presses into actions for the model. It owns the search
// box so the view can render it.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "name or tag"
	ti.CharLimit = 128

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes: map[types.Mode]types.ModeHandler{
			types.ModeNormal: modes.NewNormalMode(),
			types.ModeSearch: modes.NewSearchMode(&ti),
		},
	}
	return h
}

// HandleKey routes msg to the current mode. Mode changes are applied here and
// never reach the caller.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions, consumed := h.modes[h.currentMode].HandleKey(msg, ctx)
	if !consumed && !h.searching() {
		return nil, nil
	}

	var cmd tea.Cmd
	var out []types.Action
	for _, action := range actions {
		change, ok := action.(types.ChangeModeAction)
		if !ok {
			out = append(out, action)
			continue
		}
		more, modeCmd := h.switchMode(change, ctx)
		out = append(out, more...)
		if modeCmd != nil {
			cmd = modeCmd
		}
	}

	// Unhandled keys in the search box edit the query
	if h.searching() && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		out = append(out, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return out, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions := h.modes[h.currentMode].Exit(ctx)
	h.currentMode = change.Mode
	actions = append(actions, h.modes[h.currentMode].Enter(ctx)...)

	if !h.searching() {
		return actions, nil
	}

	// Resume editing the current query
	h.textInput.Reset()
	if query, ok := change.Data.(string); ok {
		h.textInput.SetValue(query)
		h.textInput.CursorEnd()
	}
	h.textInput.Focus()
	return actions, textinput.Blink
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// Prompt returns the prompt of the current text mode
func (h *Handler) Prompt() string {
	if tm, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return tm.Prompt()
	}
	return ""
}

// TextInput returns the search box while it is being edited, else nil
func (h *Handler) TextInput() *textinput.Model {
	if h.searching() {
		return h.textInput
	}
	return nil
}

func (h *Handler) searching() bool {
	return h.currentMode == types.ModeSearch
}

// Update forwards non-key messages such as cursor blink to the search box
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if !h.searching() {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}
