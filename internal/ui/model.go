package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/data/dispatcher"
	"github.com/atomicstack/list-creation/internal/logging/events"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/state"
	"github.com/atomicstack/list-creation/internal/theme"
	uistate "github.com/atomicstack/list-creation/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type pane = uistate.Pane

// column identifies one of the three panes shown while merging.
type column int

const (
	columnLeft column = iota
	columnDraft
	columnRight
	columnCount
)

const (
	browsePaneID = "lists"
	draftTitle   = "New list"
)

var columnIDs = [columnCount]string{"left", "draft", "right"}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the list partition manager.
type Model struct {
	manager    *partition.Manager
	catalog    state.CatalogStore
	dispatcher *dispatcher.Dispatcher
	loader     *backend.Loader
	loadSeq    int

	lists   *pane
	columns [columnCount]*pane
	focus   column

	keys              keyMap
	spinner           spinner.Model
	filterCursor      cursor.Model
	filterCursorDirty bool
	filterFocused     bool

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a model waiting for its first load. loader may be nil, in
// which case load results must be delivered as backendEventMsg values.
func NewModel(width, height int, showFooter, verbose bool, loader *backend.Loader) *Model {
	manager := partition.New()
	catalog := state.NewCatalogStore()
	m := &Model{
		manager:    manager,
		catalog:    catalog,
		dispatcher: dispatcher.New(manager, catalog),
		loader:     loader,
		lists:      uistate.NewPane(browsePaneID, "Lists", nil),
		keys:       newKeyMap(),
		showFooter: showFooter,
		verbose:    verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Spinner != nil {
		s.Style = styles.Spinner.Copy()
	}
	m.spinner = s
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.loadSeq = 1
	m.dispatcher.Expect(m.loadSeq)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It issues the initial load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.issueLoad(m.loadSeq, "initial")}
	if m.loader != nil {
		cmds = append(cmds, waitForBackendEvent(m.loader))
	}
	m.filterFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		// The caret only blinks once Init has focused it.
		if m.filterFocused {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// handleSpinnerTickMsg keeps the spinner animating only while a load is
// outstanding; the chain stops by itself once loading ends.
func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if m.manager.Mode() != partition.ModeLoading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncAllViewports()
	return nil
}

// Mode exposes the partition mode for callers outside the package.
func (m *Model) Mode() partition.Mode {
	return m.manager.Mode()
}
