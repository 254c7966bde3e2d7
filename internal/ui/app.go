package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"topicflow/internal/debug"
	"topicflow/internal/export"
	"topicflow/internal/graph"
	"topicflow/internal/topic"
	"topicflow/internal/ui/theme"
	"topicflow/internal/viewport"
)

const (
	minGraphWidth   = 20
	minBodyHeight   = 5
	detailPaneWidth = 36
	// The detail pane only opens when the graph keeps at least this much room.
	detailPaneMinTotal = 90
	eventBuffer        = 64
)

// Config configures the UI application.
type Config struct {
	Store         *topic.Store
	Viewport      viewport.Options
	MinZoom       float64
	SourceName    string
	Version       string
	Theme         string
	MarkdownStyle string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// App implements the Bubble Tea model over a topic store.
type App struct {
	store      *topic.Store
	surface    *surface
	controller *viewport.Controller
	keys       KeyMap
	exporter   export.Exporter

	ctx         context.Context
	cancel      context.CancelFunc
	events      chan topic.Event
	unsubscribe func()

	width         int
	height        int
	ready         bool
	showHelp      bool
	sourceName    string
	version       string
	markdownStyle string
	markdown      func(string) string
	clipboard     func(string) error

	toast      string
	toastIsErr bool
	toastSeq   int

	layoutsInFlight int
}

// NewApp wires the UI to the store. The store must already hold the topic.
func NewApp(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("ui: store is required")
	}
	if cfg.Viewport == (viewport.Options{}) {
		cfg.Viewport = viewport.DefaultOptions()
	}
	if cfg.Theme != "" && !theme.Set(cfg.Theme) {
		debug.With("theme", cfg.Theme).Debug("unknown theme, keeping current")
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	s := newSurface(cfg.MinZoom)
	ctx, cancel := context.WithCancel(context.Background())
	m := &App{
		store:         cfg.Store,
		surface:       s,
		controller:    viewport.NewController(s, cfg.Viewport),
		keys:          DefaultKeyMap(),
		exporter:      export.NewMermaidExporter(),
		ctx:           ctx,
		cancel:        cancel,
		events:        make(chan topic.Event, eventBuffer),
		sourceName:    cfg.SourceName,
		version:       cfg.Version,
		markdownStyle: cfg.MarkdownStyle,
		clipboard:     copyFn,
	}
	m.markdown = buildMarkdownRenderer(m.markdownStyle, detailPaneWidth-4)
	m.unsubscribe = cfg.Store.Subscribe(func(ev topic.Event) {
		select {
		case m.events <- ev:
		default:
			debug.With("event", ev.Kind).Debug("ui event buffer full, dropping")
		}
	})
	return m, nil
}

func (m *App) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.relayoutCmd(true))
}

// Close releases the store subscription and cancels in-flight layouts.
func (m *App) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *App) relayoutCmd(fit bool) tea.Cmd {
	m.layoutsInFlight++
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return layoutDoneMsg{err: store.Relayout(ctx), fit: fit}
	}
}

func (m *App) toggleNeighborsCmd(toggle topic.NeighborToggle) tea.Cmd {
	m.layoutsInFlight++
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		err := store.ToggleShowNeighbors(ctx, toggle.NodeID, toggle.NeighborType, toggle.Direction, toggle.Show())
		return layoutDoneMsg{err: err}
	}
}

func (m *App) addNodeCmd(props topic.AddNodeProps) tea.Cmd {
	m.layoutsInFlight++
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		_, err := store.AddNode(ctx, props)
		return layoutDoneMsg{err: err}
	}
}

// graphSize is the cell size of the graph area for the current window.
func (m *App) graphSize() (cols, rows int) {
	rows = max(m.height-2, minBodyHeight)
	cols = max(m.width, minGraphWidth)
	if m.detailPaneVisible() {
		cols = max(m.width-detailPaneWidth, minGraphWidth)
	}
	return cols, rows
}

func (m *App) detailPaneVisible() bool {
	if m.width < detailPaneMinTotal {
		return false
	}
	if m.store.State().CurrentView().Kind == topic.ViewingCriteriaTable {
		return false
	}
	return m.store.IsAnyArguableSelected()
}

func (m *App) resizeSurface() {
	cols, rows := m.graphSize()
	m.surface.resize(cols, rows)
}

// activeFiltered is the active diagram as it should be painted.
func (m *App) activeFiltered() (*graph.Diagram, error) {
	return m.store.FilteredDiagram(m.store.State().ActiveDiagramID())
}

// fitActive frames every painted node of the active diagram.
func (m *App) fitActive() tea.Cmd {
	d, err := m.activeFiltered()
	if err != nil {
		return m.showError(err)
	}
	m.controller.FitViewForNodes(d.Nodes)
	return nil
}

// afterCameraMove starts the animation loop when the last controller call
// began a timed move.
func (m *App) afterCameraMove() tea.Cmd {
	if m.surface.animating() {
		return scheduleAnimTick()
	}
	return nil
}

func (m *App) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastIsErr = false
	m.toastSeq++
	return scheduleToastExpiry(m.toastSeq)
}

func (m *App) showError(err error) tea.Cmd {
	debug.With("error", err).Debug("ui action failed")
	m.toast = err.Error()
	m.toastIsErr = true
	m.toastSeq++
	return scheduleToastExpiry(m.toastSeq)
}
