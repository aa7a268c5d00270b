package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mathtimeline/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Global keys first
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	// Nothing to browse or reload until the dataset is loaded
	if !ctx.Ready() {
		return nil, false
	}

	switch msg.String() {
	case "r":
		return []types.Action{types.ReloadAction{}}, true
	case "tab", "shift+tab":
		return []types.Action{types.SwitchFocusAction{}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
	case "p", "P":
		return []types.Action{types.OpenPagerAction{}}, true
	case "[":
		return []types.Action{types.ScrollDetailAction{Delta: -1}}, true
	case "]":
		return []types.Action{types.ScrollDetailAction{Delta: 1}}, true
	case "y":
		if ctx.HasDetail() {
			return []types.Action{types.CopyDetailAction{}}, true
		}
		return nil, true
	}

	if ctx.TimelineFocused() {
		return []types.Action{types.TimelineKeyAction{Msg: msg}}, true
	}
	return m.handleResultsKey(msg, ctx)
}

// handleResultsKey handles keys while the results list has focus
func (m *NormalMode) handleResultsKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.RowCount() > 0 {
			return []types.Action{types.ToggleAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case " ", "space", "x":
		if ctx.RowCount() > 0 {
			return []types.Action{types.ToggleAction{}}, true
		}
		return nil, true

	case "a", "A":
		// Toggle select all
		if ctx.SelectedCount() > 0 {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return []types.Action{types.SelectAllAction{}}, true

	case "esc":
		// Clear the query if any, otherwise do nothing
		if ctx.SearchQuery() != "" {
			return []types.Action{types.CancelTextAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true // consume the key but don't do anything

	case "G":
		// G - go to bottom
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
