package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/logging/events"
	"dockpeek/internal/menu"
	"dockpeek/internal/ui/command"
	uistate "dockpeek/internal/ui/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModePicker:
		return m.handlePickerKey(keyMsg)
	case ModeInfo:
		return m.handleInfoKey(keyMsg)
	case ModeSignal:
		return m.handleSignalKey(keyMsg)
	default:
		return nil
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if handled, cmd := m.handleFilterInput(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "ctrl+r":
		events.UI.Refresh("list")
		if m.list != nil {
			m.list.Refresh()
		}
		return nil
	case "enter":
		return m.openSelected()
	case "up":
		return m.movePickerUp()
	case "down":
		return m.movePickerDown()
	case "pgup":
		if m.picker.MoveCursorPageUp(m.maxPickerItems()) {
			events.UI.PickerCursor(m.picker.Cursor)
		}
		m.syncViewport(m.picker)
		return m.ensurePreviewForPicker()
	case "pgdown":
		if m.picker.MoveCursorPageDown(m.maxPickerItems()) {
			events.UI.PickerCursor(m.picker.Cursor)
		}
		m.syncViewport(m.picker)
		return m.ensurePreviewForPicker()
	case "home":
		if m.picker.MoveCursorHome() {
			events.UI.PickerCursor(m.picker.Cursor)
		}
		m.syncViewport(m.picker)
		return m.ensurePreviewForPicker()
	case "end":
		if m.picker.MoveCursorEnd() {
			events.UI.PickerCursor(m.picker.Cursor)
		}
		m.syncViewport(m.picker)
		return m.ensurePreviewForPicker()
	}
	return nil
}

func (m *Model) movePickerUp() tea.Cmd {
	n := len(m.picker.Items)
	if n == 0 {
		return nil
	}
	if m.picker.Cursor > 0 {
		m.picker.Cursor--
	} else {
		m.picker.Cursor = n - 1
	}
	events.UI.PickerCursor(m.picker.Cursor)
	m.syncViewport(m.picker)
	return m.ensurePreviewForPicker()
}

func (m *Model) movePickerDown() tea.Cmd {
	n := len(m.picker.Items)
	if n == 0 {
		return nil
	}
	if m.picker.Cursor < n-1 {
		m.picker.Cursor++
	} else {
		m.picker.Cursor = 0
	}
	events.UI.PickerCursor(m.picker.Cursor)
	m.syncViewport(m.picker)
	return m.ensurePreviewForPicker()
}

func (m *Model) openSelected() tea.Cmd {
	item, ok := m.picker.Current()
	if !ok {
		return nil
	}
	events.UI.PickerEnter(item.ID, item.Label, m.picker.Filter)
	before := m.picker.FilterCursorPos()
	m.picker.SetFilter("", 0)
	m.noteFilterCursorChange(m.picker, before)
	name := shortID(item.ID)
	if entry, found := m.containers.Find(item.ID); found && entry.Name != "" {
		name = entry.Name
	}
	return m.openContainer(item.ID, name)
}

func (m *Model) handleInfoKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		events.UI.Back("info")
		m.closeContainer()
		return m.ensurePreviewForPicker()
	case "r":
		events.UI.Refresh("container")
		if m.watcher != nil {
			m.watcher.Refresh()
		}
		return nil
	case "s":
		m.openSignalOverlay()
		return nil
	}
	if m.tree == nil {
		return nil
	}
	switch msg.String() {
	case "up":
		if m.tree.MoveUp() {
			m.traceTreeCursor()
		}
	case "down":
		if m.tree.MoveDown() {
			m.traceTreeCursor()
		}
	case "pgup":
		if m.tree.PageUp() {
			m.traceTreeCursor()
		}
	case "pgdown":
		if m.tree.PageDown() {
			m.traceTreeCursor()
		}
	case "home":
		if m.tree.Home() {
			m.traceTreeCursor()
		}
	case "end":
		if m.tree.End() {
			m.traceTreeCursor()
		}
	case "enter", " ":
		m.traceTreeFoldIf(m.tree.Toggle(), "toggle")
	case "right", "l":
		m.traceTreeFoldIf(m.tree.ExpandOrDescend(), "expand")
	case "left", "h":
		m.traceTreeFoldIf(m.tree.CollapseOrAscend(), "collapse")
	case "p":
		if m.tree.JumpParent() {
			m.traceTreeCursor()
		}
	case "]":
		if m.tree.JumpNextSibling() {
			m.traceTreeCursor()
		}
	case "[":
		if m.tree.JumpPrevSibling() {
			m.traceTreeCursor()
		}
	case "L":
		m.traceTreeFoldIf(m.tree.ExpandAll(), "expand-all")
	case "H":
		m.traceTreeFoldIf(m.tree.CollapseAll(), "collapse-all")
	}
	return nil
}

func (m *Model) traceTreeCursor() {
	if row, ok := m.tree.Current(); ok {
		events.UI.TreeCursor(row.Pos.PID, m.tree.Cursor())
	}
}

func (m *Model) traceTreeFoldIf(changed bool, action string) {
	if !changed {
		return
	}
	pid := 0
	if row, ok := m.tree.Current(); ok {
		pid = row.Pos.PID
	}
	events.UI.TreeFold(action, pid)
}

func (m *Model) openSignalOverlay() {
	if m.tree == nil {
		return
	}
	row, ok := m.tree.Current()
	if !ok {
		return
	}
	source := menu.SignalItems()
	items := make([]uistate.Item, 0, len(source))
	for _, entry := range source {
		items = append(items, uistate.Item{ID: entry.ID, Label: entry.Label})
	}
	title := fmt.Sprintf("Signal [%d] %s", row.Pos.PID, row.Pos.Command)
	m.signal = uistate.NewLevel("signal", title, items)
	m.signal.Cursor = 0
	m.setMode(ModeSignal)
}

func (m *Model) handleSignalKey(msg tea.KeyMsg) tea.Cmd {
	if m.signal == nil {
		m.setMode(ModeInfo)
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "q":
		events.UI.Back("signal")
		m.signal = nil
		m.setMode(ModeInfo)
		return nil
	case "up":
		if n := len(m.signal.Items); n > 0 {
			if m.signal.Cursor > 0 {
				m.signal.Cursor--
			} else {
				m.signal.Cursor = n - 1
			}
		}
		return nil
	case "down":
		if n := len(m.signal.Items); n > 0 {
			if m.signal.Cursor < n-1 {
				m.signal.Cursor++
			} else {
				m.signal.Cursor = 0
			}
		}
		return nil
	case "enter":
		return m.executeSignal()
	}
	return nil
}

func (m *Model) executeSignal() tea.Cmd {
	item, ok := m.signal.Current()
	if !ok {
		return nil
	}
	node, found := m.registry.Child("signal", item.ID)
	if !found || node.Action == nil {
		m.errMsg = fmt.Sprintf("no action bound for %q", item.ID)
		m.signal = nil
		m.setMode(ModeInfo)
		return nil
	}
	ctx := m.menuContext()
	m.signal = nil
	m.setMode(ModeInfo)
	m.loading = true
	m.pendingID = node.ID
	m.pendingLabel = item.Label
	m.errMsg = ""
	m.forceClearInfo()
	return m.bus.Execute(ctx, command.Request{
		ID:      node.ID,
		Label:   item.Label,
		Handler: node.Action,
		Item:    menu.Item{ID: item.ID, Label: item.Label},
	})
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxPickerItems())
}
