package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/backend"
	"dockpeek/internal/data/dispatcher"
	"dockpeek/internal/docker"
	"dockpeek/internal/logging/events"
	"dockpeek/internal/menu"
	"dockpeek/internal/proctree"
	"dockpeek/internal/state"
	"dockpeek/internal/theme"
	"dockpeek/internal/treeview"
	"dockpeek/internal/ui/command"
	uistate "dockpeek/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModePicker Mode = iota
	ModeInfo
	ModeSignal
)

func (m Mode) String() string {
	switch m {
	case ModePicker:
		return "picker"
	case ModeInfo:
		return "info"
	case ModeSignal:
		return "signal"
	default:
		return "unknown"
	}
}

const pickerLevelID = "containers"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Client is the slice of the runtime CLI the UI depends on.
type Client interface {
	Containers(ctx context.Context) ([]docker.Container, error)
	Top(ctx context.Context, id string) (docker.TopSnapshot, error)
	Inspect(ctx context.Context, id string) (docker.Details, error)
	Stats(ctx context.Context, id string) (docker.StatsSample, error)
	Logs(ctx context.Context, id string, tail int) ([]string, error)
	Kill(ctx context.Context, id string, pid int, signal string) error
}

// newContainerWatcher is swapped out by tests to observe watcher lifecycles.
var newContainerWatcher = func(client backend.Client, id string, topInterval, statsInterval time.Duration) *backend.Watcher {
	return backend.NewContainerWatcher(client, id, topInterval, statsInterval)
}

// Options captures the UI knobs handed down from configuration.
type Options struct {
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	Container     string
	TopInterval   time.Duration
	StatsInterval time.Duration
	LogTail       int
}

// Model implements the Bubble Tea model for the container inspector.
type Model struct {
	client Client

	picker            *level
	preview           map[string]*previewData
	previewSeq        int
	filterCursor      cursor.Model
	filterCursorDirty bool

	mode        Mode
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	topInterval   time.Duration
	statsInterval time.Duration
	logTail       int

	list      *backend.Watcher
	watcher   *backend.Watcher
	listErr   string
	fetchErrs map[backend.Kind]error

	containers state.ContainerStore
	processes  state.ProcessStore
	details    state.DetailsStore
	stats      state.StatsStore
	disp       *dispatcher.Dispatcher

	current docker.Container
	tree    *treeview.Model[proctree.Record]
	treeErr string

	signal   *level
	registry *menu.Registry
	bus      *command.Bus

	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time

	pendingOpen string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI over the runtime client and the shared
// container-list watcher. A non-empty Options.Container opens that container
// directly instead of starting on the picker.
func NewModel(client Client, list *backend.Watcher, opts Options) *Model {
	containers := state.NewContainerStore()
	processes := state.NewProcessStore()
	details := state.NewDetailsStore()
	stats := state.NewStatsStore()
	m := &Model{
		client:        client,
		picker:        uistate.NewLevel(pickerLevelID, "Containers", nil),
		preview:       make(map[string]*previewData),
		mode:          ModePicker,
		showFooter:    opts.ShowFooter,
		verbose:       opts.Verbose,
		topInterval:   opts.TopInterval,
		statsInterval: opts.StatsInterval,
		logTail:       opts.LogTail,
		list:          list,
		fetchErrs:     map[backend.Kind]error{},
		containers:    containers,
		processes:     processes,
		details:       details,
		stats:         stats,
		disp:          dispatcher.New(containers, processes, details, stats),
		registry:      menu.BuildRegistry(),
		bus:           command.New(),
		pendingOpen:   opts.Container,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.list != nil {
		cmds = append(cmds, waitForListEvent(m.list))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.pendingOpen != "" {
		target := m.pendingOpen
		m.pendingOpen = ""
		if cmd := m.openContainer(target, target); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
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
		reflect.TypeOf(listEventMsg{}):      m.handleListEventMsg,
		reflect.TypeOf(listDoneMsg{}):       m.handleListDoneMsg,
		reflect.TypeOf(containerEventMsg{}): m.handleContainerEventMsg,
		reflect.TypeOf(containerDoneMsg{}):  m.handleContainerDoneMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
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
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	events.UI.Mode(mode.String())
}

// menuContext carries the focused container and the process under the tree
// cursor into menu actions.
func (m *Model) menuContext() menu.Context {
	ctx := menu.Context{
		ContainerID:   m.current.ID,
		ContainerName: m.current.Name,
		Client:        m.client,
	}
	if m.tree != nil {
		if row, ok := m.tree.Current(); ok {
			ctx.PID = row.Pos.PID
			ctx.Command = row.Pos.Command
		}
	}
	return ctx
}
