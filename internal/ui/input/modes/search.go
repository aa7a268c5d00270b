package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mathtimeline/internal/ui/input/types"
)

// SearchMode edits the query. Results are recomputed on every keystroke, so
// leaving with enter or tab keeps what was typed and esc clears it.
type SearchMode struct {
	textInput *textinput.Model
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{textInput: ti}
}

func (m *SearchMode) Name() string {
	return "search"
}

// Prompt is drawn by the view in front of the input
func (m *SearchMode) Prompt() string {
	return "Search: "
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	m.textInput.Prompt = ""
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	m.textInput.Blur()
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter", "tab":
		return []types.Action{
			types.SubmitTextAction{Text: m.textInput.Value(), Mode: types.ModeSearch},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "up", "down":
		// move through the live results without leaving the box
		return []types.Action{types.NavigateAction{Direction: msg.String()}}, true
	case "ctrl+u":
		m.textInput.SetValue("")
		return []types.Action{types.UpdateTextAction{Text: ""}}, true
	}
	// Typing goes to the text input
	return nil, false
}
