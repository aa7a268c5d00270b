package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathtimeline/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSearchModeTyping(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true, Rows: 3}

	actions, cmd := h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())

	actions, _ = h.HandleKey(runes("e"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "e"}, actions[0])

	actions, _ = h.HandleKey(runes("u"), ctx)
	assert.Equal(t, types.UpdateTextAction{Text: "eu"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitTextAction{Text: "eu", Mode: types.ModeSearch}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchModeEscCancels(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true}

	h.HandleKey(runes("/"), ctx)
	h.HandleKey(runes("x"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)

	require.Len(t, actions, 1)
	assert.IsType(t, types.CancelTextAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSearchResumesWithQuery(t *testing.T) {
	h := New()
	h.HandleKey(runes("/"), &ModelContext{Loaded: true, Query: "gauss"})

	require.NotNil(t, h.TextInput())
	assert.Equal(t, "gauss", h.TextInput().Value())
	assert.Equal(t, "Search: ", h.Prompt())
}

func TestNotReadyIgnoresBrowsing(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: false}

	actions, _ := h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	actions, _ = h.HandleKey(runes(" "), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("r"), ctx)
	assert.Empty(t, actions, "reload needs a loaded dataset")

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)
}

func TestResultsKeys(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true, Rows: 2}

	tests := []struct {
		key  tea.KeyMsg
		want types.Action
	}{
		{runes("j"), types.NavigateAction{Direction: "down"}},
		{tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{runes(" "), types.ToggleAction{}},
		{tea.KeyMsg{Type: tea.KeyEnter}, types.ToggleAction{}},
		{runes("a"), types.SelectAllAction{}},
		{runes("G"), types.NavigateAction{Direction: "end"}},
		{tea.KeyMsg{Type: tea.KeyTab}, types.SwitchFocusAction{}},
		{runes("?"), types.ToggleHelpAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			actions, _ := h.HandleKey(tt.key, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
		})
	}
}

func TestGGGoesHome(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true, Rows: 5}

	actions, _ := h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestSelectAllFlipsToDeselect(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(runes("a"), &ModelContext{Loaded: true, Rows: 2, Selected: 1})
	assert.Equal(t, []types.Action{types.DeselectAllAction{}}, actions)
}

func TestTimelineFocusForwardsKeys(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true, Timeline: true}

	key := tea.KeyMsg{Type: tea.KeyEnter}
	actions, _ := h.HandleKey(key, ctx)
	assert.Equal(t, []types.Action{types.TimelineKeyAction{Msg: key}}, actions)

	// tab still switches focus back
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.SwitchFocusAction{}}, actions)
}

func TestDetailKeysNeedDetail(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("y"), &ModelContext{Loaded: true})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("y"), &ModelContext{Loaded: true, Detail: true})
	assert.Equal(t, []types.Action{types.CopyDetailAction{}}, actions)

	actions, _ = h.HandleKey(runes("]"), &ModelContext{Loaded: true, Detail: true})
	assert.Equal(t, []types.Action{types.ScrollDetailAction{Delta: 1}}, actions)
}

func TestPagerOpensWithoutDetail(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(runes("p"), &ModelContext{Loaded: true, Timeline: true})
	assert.Equal(t, []types.Action{types.OpenPagerAction{}}, actions)
}

func TestSearchModeEditingKeys(t *testing.T) {
	h := New()
	ctx := &ModelContext{Loaded: true, Rows: 4, Query: "noe"}
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)
	assert.Equal(t, types.ModeSearch, h.CurrentMode(), "arrows keep the box open")

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU}, ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: ""}}, actions)
	assert.Empty(t, h.TextInput().Value())

	h.HandleKey(runes("e"), ctx)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "e", Mode: types.ModeSearch}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
