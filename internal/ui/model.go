package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mathtimeline/internal/config"
	"mathtimeline/internal/domain"
	"mathtimeline/internal/eventbus"
	"mathtimeline/internal/locale"
	"mathtimeline/internal/logic"
	"mathtimeline/internal/ui/handlers"
	"mathtimeline/internal/ui/input"
	inputtypes "mathtimeline/internal/ui/input/types"
	"mathtimeline/internal/ui/services/events"
	"mathtimeline/internal/ui/services/navigation"
	"mathtimeline/internal/ui/services/rendersync"
	"mathtimeline/internal/ui/services/search"
	"mathtimeline/internal/ui/services/selection"
	"mathtimeline/internal/ui/state"
	"mathtimeline/internal/ui/timeline"
	"mathtimeline/internal/ui/viewmodels"
	"mathtimeline/internal/ui/views"
)

// DatasetLoader fetches and decodes a dataset
type DatasetLoader interface {
	Load(ctx context.Context, src string) (*domain.Dataset, error)
}

// Options are the model's collaborators. Loader is required, the rest get
// defaults.
type Options struct {
	Loader    DatasetLoader
	Bus       eventbus.EventBus // load results are published here when set
	Logger    *zap.SugaredLogger
	Preselect []domain.ID
	Pager     Pager
	Clipboard Clipboard
	Context   context.Context
}

// Model represents the UI state
type Model struct {
	cfg   *config.Config
	opts  Options
	log   *zap.SugaredLogger
	state *state.AppState // centralized state

	// Services
	uiBus      *events.Bus
	store      *logic.MemoryEntityStore
	selection  *selection.Service
	search     *search.Service
	navigation *navigation.Service
	sync       *rendersync.Service // nil until the first successful load
	timeline   *timeline.Model     // nil until the first successful load

	// Rendering
	dates        locale.DateFormatter
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	help         help.Model
	keys         keyMap
	detailView   viewport.Model

	width  int
	height int

	// commands queued by UI bus handlers during the current Update
	pending []tea.Cmd
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Pager == nil {
		opts.Pager = NewOvPager()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard
	}

	m := &Model{
		cfg:          cfg,
		opts:         opts,
		log:          opts.Logger,
		state:        state.NewAppState(cfg.Data.Source),
		uiBus:        events.NewBus(),
		store:        logic.NewMemoryEntityStore(),
		dates:        locale.New(cfg.UI.Locale),
		renderer:     views.NewRenderer(cfg.UI.Theme, cfg.Timeline.MinHeight),
		inputHandler: input.New(),
		help:         help.New(),
		keys:         newKeyMap(timeline.DefaultKeyMap()),
		detailView:   viewport.New(0, 0),
	}

	m.selection = selection.NewService(m.uiBus)
	m.search = search.NewService(m.uiBus, m.log)
	m.search.SetSourceFunction(m.store.All)
	m.navigation = navigation.NewService(m.uiBus)
	m.navigation.SetCountFunction(func() int { return len(m.state.Rows) })
	m.viewModel = viewmodels.NewViewModel(m.state, m.renderer.Styles())
	m.eventHandler = handlers.NewEventHandler(m.state, m.startLoad, m.log)

	// Every selection change re-runs render sync
	m.uiBus.Subscribe(events.TypeOf(selection.SelectionChangedEvent{}), func(interface{}) { m.queueSync() })
	m.uiBus.Subscribe(events.TypeOf(selection.SelectionClearedEvent{}), func(interface{}) { m.queueSync() })
	m.uiBus.Subscribe(events.TypeOf(search.SearchCompletedEvent{}), func(e interface{}) {
		m.state.MatchCount = e.(search.SearchCompletedEvent).MatchCount
	})

	m.applyLayout()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if pager, ok := m.opts.Pager.(*OvPager); ok {
		pager.SetProgram(p)
	}
}

// Init starts loading the dataset
func (m *Model) Init() tea.Cmd {
	return m.startLoad()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	cmds := append(m.drainPending(), cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.applyLayout()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case datasetLoadedMsg:
		return m.handleLoaded(msg)

	case loadFailedMsg:
		m.handleLoadFailed(msg)
		return nil

	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case timeline.SelectMsg:
		m.handleTimelineSelect(msg)
		return nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.log.Errorw("Pager failed", "error", msg.err)
			m.state.SetError(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return nil

	case copyDoneMsg:
		if msg.err != nil {
			m.log.Errorw("Copy to clipboard failed", "error", msg.err)
			m.state.SetError(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.state.SetStatus("Copied details to clipboard")
		}
		return nil
	}

	// Handle non-keyboard messages: cursor blink and timeline animation frames
	var cmds []tea.Cmd
	if cmd := m.inputHandler.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.timeline != nil {
		if cmd := m.timeline.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// handleKey routes keys to the help popup or the input handler
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.state.ShowHelp {
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit
		case "esc", "?", "q":
			m.state.ShowHelp = false
			m.state.HelpScrollOffset = 0
		case "up", "k":
			if m.state.HelpScrollOffset > 0 {
				m.state.HelpScrollOffset--
			}
		case "down", "j":
			if m.state.HelpScrollOffset < m.renderer.HelpLineCount()-1 {
				m.state.HelpScrollOffset++
			}
		}
		return nil
	}

	m.state.ClearStatus()

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Loaded:   m.state.Ready(),
		Timeline: m.state.Focus == views.PaneTimeline,
		Rows:     len(m.state.Rows),
		Selected: m.selection.GetCount(),
		Detail:   m.state.Detail != nil,
		Query:    m.search.GetQuery(),
	}
}

// processAction executes one action produced by the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigation.Navigate(navigation.Direction(a.Direction))

	case inputtypes.ToggleAction:
		m.toggleCurrentRow()

	case inputtypes.SelectAllAction:
		ids := make([]domain.ID, 0, len(m.state.Rows))
		for _, row := range m.state.Rows {
			ids = append(ids, row.ID)
		}
		m.selection.Select(ids...)
		m.state.SetAllChecked(true)

	case inputtypes.DeselectAllAction:
		m.selection.DeselectAll()
		m.state.SetAllChecked(false)

	case inputtypes.UpdateTextAction:
		m.runSearch(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Text != m.search.GetQuery() {
			m.runSearch(a.Text)
		}

	case inputtypes.CancelTextAction:
		if m.state.Ready() {
			m.search.ClearSearch()
			m.showResults()
			m.navigation.Reset()
		}

	case inputtypes.SwitchFocusAction:
		m.switchFocus()

	case inputtypes.TimelineKeyAction:
		if m.timeline != nil {
			return m.timeline.Update(a.Msg)
		}

	case inputtypes.ScrollDetailAction:
		if a.Delta < 0 {
			m.detailView.LineUp(-a.Delta)
		} else {
			m.detailView.LineDown(a.Delta)
		}

	case inputtypes.OpenPagerAction:
		title, content := m.pagerContent()
		return pagerCmd(m.opts.Pager, title, content)

	case inputtypes.CopyDetailAction:
		if m.state.Detail != nil {
			return copyCmd(m.opts.Clipboard, m.state.Detail.Text())
		}

	case inputtypes.ReloadAction:
		m.state.SetStatus("Reloading dataset...")
		return m.startLoad()

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// toggleCurrentRow flips the checkbox under the cursor. Only that row is
// redrawn; the others keep the state they were rendered with.
func (m *Model) toggleCurrentRow() {
	i := m.navigation.GetCursor()
	row, ok := m.state.Row(i)
	if !ok {
		return
	}
	checked := m.selection.Toggle(row.ID)
	m.state.SetRowChecked(i, checked)
}

// runSearch recomputes the visible subset and replaces every row. It does
// nothing until a dataset is loaded.
func (m *Model) runSearch(query string) {
	if !m.state.Ready() {
		return
	}
	m.rebuildRows(query)
	m.navigation.Reset()
}

func (m *Model) rebuildRows(query string) {
	m.search.Run(query)
	m.showResults()
}

// showResults replaces the rows with the current search results
func (m *Model) showResults() {
	m.state.SetRows(views.BuildRows(m.search.GetResults(), m.selection.IsSelected))
}

func (m *Model) switchFocus() {
	if m.timeline == nil {
		return
	}
	if m.state.ToggleFocus() == views.PaneTimeline {
		m.timeline.Focus()
	} else {
		m.timeline.Blur()
	}
	m.keys.focus = m.state.Focus
}

// queueSync runs render sync and keeps its window command for the end of
// the current Update
func (m *Model) queueSync() {
	if m.sync == nil {
		return
	}
	if cmd := m.sync.Sync(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) drainPending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// startLoad fetches the dataset in the background. It returns nil while a
// load is already running and after the first load failed.
func (m *Model) startLoad() tea.Cmd {
	if m.state.Loading || m.state.LoadState == views.LoadFailed {
		return nil
	}
	m.state.Loading = true

	src, loader, ctx := m.state.Source, m.opts.Loader, m.opts.Context
	reload := m.state.Ready()
	m.log.Infow("Loading dataset", "source", src, "reload", reload)

	return func() tea.Msg {
		ds, err := loader.Load(ctx, src)
		if err != nil {
			return loadFailedMsg{source: src, err: err, reload: reload}
		}
		return datasetLoadedMsg{source: src, dataset: ds, reload: reload}
	}
}

func (m *Model) handleLoaded(msg datasetLoadedMsg) tea.Cmd {
	m.state.Loading = false
	ds := msg.dataset
	m.store.Replace(ds.Entities())

	m.log.Infow("Dataset loaded",
		"source", msg.source,
		"persons", len(ds.Persons),
		"events", len(ds.Events),
		"reload", msg.reload,
	)
	m.publish(eventbus.DatasetLoadedEvent{
		Source:  msg.source,
		Persons: len(ds.Persons),
		Events:  len(ds.Events),
		Reload:  msg.reload,
	})

	if m.timeline == nil {
		m.timeline = timeline.New(m.timelineOptions())
		m.sync = rendersync.NewService(m.store, m.selection, m.timeline, rendersync.Options{
			BufferYears: m.cfg.Timeline.BufferYears,
			Animate:     m.cfg.Timeline.Animate,
		}, m.log)
	}
	m.state.LoadState = views.LoadDone
	m.state.LoadErr = nil
	m.applyLayout()

	if msg.reload {
		// entities that disappeared leave the selection
		m.selection.Retain(m.store.Has)
		m.refreshDetail()
		m.rebuildRows(m.search.GetQuery())
		m.navigation.Clamp()
		m.state.SetStatus(fmt.Sprintf("Reloaded %d persons and %d events", len(ds.Persons), len(ds.Events)))
	} else {
		m.preselect()
		m.runSearch(m.search.GetQuery())
	}

	// labels and dates may have changed even when the selection did not
	m.queueSync()
	return nil
}

func (m *Model) handleLoadFailed(msg loadFailedMsg) {
	m.state.Loading = false
	m.log.Errorw("Dataset load failed", "source", msg.source, "error", msg.err)
	m.publish(eventbus.DatasetLoadFailedEvent{Source: msg.source, Err: msg.err, Reload: msg.reload})

	if msg.reload && m.state.Ready() {
		// keep showing the last good dataset
		m.state.SetError(fmt.Sprintf("Reload failed: %v", msg.err))
		return
	}

	m.state.LoadState = views.LoadFailed
	m.state.LoadErr = msg.err
	m.applyLayout()
}

// preselect applies ids given on the command line
func (m *Model) preselect() {
	var ids []domain.ID
	for _, id := range m.opts.Preselect {
		if m.store.Has(id) {
			ids = append(ids, id)
		} else {
			m.log.Warnw("Preselected id not in dataset", "id", id)
		}
	}
	m.selection.Select(ids...)
}

// handleTimelineSelect drives the detail panel from the timeline selection
func (m *Model) handleTimelineSelect(msg timeline.SelectMsg) {
	if len(msg.IDs) == 0 {
		m.setDetail(nil)
		return
	}

	e, ok := m.store.Get(msg.IDs[0])
	if !ok {
		// panel keeps its previous content
		m.log.Debugw("Timeline selection not in dataset", "id", msg.IDs[0])
		return
	}

	d := views.NewDetail(e, m.dates)
	m.setDetail(&d)

	// so the same item can be chosen again
	if m.timeline != nil {
		m.timeline.ClearSelection()
	}
}

// refreshDetail re-renders the shown entity from the reloaded store
func (m *Model) refreshDetail() {
	if m.state.Detail == nil {
		return
	}
	e, ok := m.store.Get(m.state.Detail.ID)
	if !ok {
		m.setDetail(nil)
		return
	}
	d := views.NewDetail(e, m.dates)
	m.setDetail(&d)
}

func (m *Model) setDetail(d *views.Detail) {
	m.state.Detail = d
	m.renderDetail()
	m.detailView.GotoTop()
}

func (m *Model) renderDetail() {
	m.detailView.SetContent(m.renderer.RenderDetail(m.state.Detail, m.detailView.Width))
}

// pagerContent returns the detail text, or the results list when no detail
// is shown
func (m *Model) pagerContent() (string, string) {
	if m.state.Detail != nil {
		return m.state.Detail.Heading, m.state.Detail.Text()
	}

	title := "All entities"
	if q := m.search.GetQuery(); q != "" {
		title = fmt.Sprintf("Results for %q", q)
	}
	var b strings.Builder
	for _, row := range m.state.Rows {
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s %s\n", box, row.Label)
	}
	if len(m.state.Rows) == 0 {
		b.WriteString(views.NoResultsText)
	}
	return title, b.String()
}

// applyLayout resizes the results viewport, detail panel and timeline
func (m *Model) applyLayout() {
	layout := views.ComputeLayout(m.width, m.height, m.cfg.Timeline.MinHeight, m.state.Ready())

	// scroll indicators can take two of the rows
	rows := layout.ResultsRows - 2
	if rows < 1 {
		rows = 1
	}
	m.navigation.SetViewportHeight(rows)

	m.detailView.Width = layout.DetailWidth
	m.detailView.Height = layout.DetailHeight
	m.renderDetail()

	if m.timeline != nil {
		m.timeline.SetSize(layout.TimelineWidth, layout.TimelineHeight)
	}
}

func (m *Model) timelineOptions() timeline.Options {
	opts := timeline.DefaultOptions()
	opts.Stack = m.cfg.Timeline.Stack
	opts.ZoomMin = float64(m.cfg.Timeline.ZoomMinYears)
	opts.ZoomMax = float64(m.cfg.Timeline.ZoomMaxYears)
	opts.MinHeight = m.cfg.Timeline.MinHeight
	opts.Theme = m.cfg.UI.Theme
	if !m.cfg.Timeline.Animate {
		opts.Frames = 0
	}
	return opts
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(event)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.keys.focus = m.state.Focus
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetHelp(m.help, m.keys)
	m.viewModel.SetSearchInput(m.inputHandler.TextInput(), m.inputHandler.Prompt())

	src := viewmodels.Sources{
		Query:         m.search.GetQuery(),
		Cursor:        m.navigation.GetCursor(),
		Offset:        m.navigation.GetViewportOffset(),
		SelectedCount: m.selection.GetCount(),
		TotalCount:    m.store.Len(),
		DetailView:    m.detailView.View(),
	}
	if m.timeline != nil {
		src.TimelineView = m.timeline.View()
	}
	return m.renderer.Render(m.viewModel.BuildViewState(src))
}
