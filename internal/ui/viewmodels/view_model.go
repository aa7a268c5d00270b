package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"mathtimeline/internal/ui/state"
	"mathtimeline/internal/ui/views"
)

// Sources is what the view model reads besides AppState
type Sources struct {
	Query         string
	Cursor        int
	Offset        int
	SelectedCount int
	TotalCount    int
	TimelineView  string
	DetailView    string
}

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	styles    *views.Styles
	width     int
	height    int
	help      help.Model
	keys      help.KeyMap
	searching bool
	prompt    string
	textInput textinput.Model
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, styles *views.Styles) *ViewModel {
	return &ViewModel{
		state:  appState,
		styles: styles,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model and the key map shown in the footer
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetSearchInput records the live search input; ti is nil outside search mode
func (vm *ViewModel) SetSearchInput(ti *textinput.Model, prompt string) {
	vm.searching = ti != nil
	vm.prompt = prompt
	if ti != nil {
		vm.textInput = *ti
	}
}

// searchLine renders the search box line
func (vm *ViewModel) searchLine(query string) string {
	if vm.searching {
		return vm.styles.Search.Render(vm.prompt) + vm.textInput.View()
	}
	if query != "" {
		return vm.styles.Search.Render("Search: ") + query + vm.styles.Dim.Render("  (/ to edit, esc to clear)")
	}
	if !vm.state.Ready() {
		return vm.styles.Dim.Render("Search: -")
	}
	return vm.styles.Dim.Render("Press / to search by name or tag")
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState(src Sources) views.ViewState {
	return views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Focus:            vm.state.Focus,
		LoadState:        vm.state.LoadState,
		LoadError:        loadErrorText(vm.state.LoadErr),
		Source:           vm.state.Source,
		SearchView:       vm.searchLine(src.Query),
		Query:            src.Query,
		Rows:             vm.state.Rows,
		Cursor:           src.Cursor,
		ViewportOffset:   src.Offset,
		TimelineView:     src.TimelineView,
		DetailView:       src.DetailView,
		MatchCount:       vm.state.MatchCount,
		SelectedCount:    src.SelectedCount,
		TotalCount:       src.TotalCount,
		StatusMessage:    vm.state.StatusMessage,
		StatusIsError:    vm.state.StatusIsError,
		ShowHelp:         vm.state.ShowHelp,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		HelpModel:        vm.help,
		HelpKeys:         vm.keys,
	}
}

// hinter is implemented by dataset.LoadError
type hinter interface {
	Hint() string
}

func loadErrorText(err error) string {
	if err == nil {
		return ""
	}
	if h, ok := err.(hinter); ok && h.Hint() != "" {
		return h.Hint()
	}
	return err.Error()
}
