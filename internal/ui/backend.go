package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/backend"
	"dockpeek/internal/docker"
	"dockpeek/internal/logging/events"
	"dockpeek/internal/proctree"
	"dockpeek/internal/treeview"
	uistate "dockpeek/internal/ui/state"
)

func waitForListEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return listDoneMsg{}
		}
		return listEventMsg{event: evt}
	}
}

func waitForContainerEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return containerDoneMsg{src: w}
		}
		return containerEventMsg{src: w, event: evt}
	}
}

type listEventMsg struct {
	event backend.Event
}

type listDoneMsg struct{}

type containerEventMsg struct {
	src   *backend.Watcher
	event backend.Event
}

type containerDoneMsg struct {
	src *backend.Watcher
}

func (m *Model) handleListEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(listEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyListEvent(eventMsg.event)
	if m.list != nil {
		waitCmd := waitForListEvent(m.list)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleListDoneMsg(tea.Msg) tea.Cmd {
	m.list = nil
	return nil
}

func (m *Model) handleContainerEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(containerEventMsg)
	if !ok {
		return nil
	}
	// Events from a watcher that has since been replaced belong to a
	// container the user already left.
	if eventMsg.src != m.watcher {
		return nil
	}
	m.applyContainerEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForContainerEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleContainerDoneMsg(msg tea.Msg) tea.Cmd {
	doneMsg, ok := msg.(containerDoneMsg)
	if !ok {
		return nil
	}
	if doneMsg.src == m.watcher {
		m.watcher = nil
	}
	return nil
}

func (m *Model) applyListEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.listErr = evt.Err.Error()
		return nil
	}
	m.listErr = ""
	res := m.disp.Handle(evt)
	if !res.ContainersUpdated {
		return nil
	}
	entries := m.containers.Entries()
	m.picker.UpdateItems(containerItems(entries))
	m.syncViewport(m.picker)
	m.prunePreviews(entries)
	if m.mode == ModePicker {
		return m.ensurePreviewForPicker()
	}
	return nil
}

func (m *Model) applyContainerEvent(evt backend.Event) {
	if m.fetchErrs == nil {
		m.fetchErrs = make(map[backend.Kind]error)
	}
	m.fetchErrs[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.errMsg = fmt.Sprintf("%s: %s", evt.Kind, evt.Err)
		return
	}
	res := m.disp.Handle(evt)
	if res.ProcessesUpdated {
		m.rebuildTree(res.BuildErr)
	}
	if res.DetailsUpdated {
		if details, ok := m.details.Get(); ok {
			m.adoptIdentity(details)
		}
	}
	if warn, _ := m.hasFetchIssue(); !warn {
		m.errMsg = ""
	}
}

// rebuildTree swaps a freshly built index into the tree view, preserving
// collapse state and cursor for PIDs that survived the refresh.
func (m *Model) rebuildTree(buildErr error) {
	if buildErr != nil {
		m.treeErr = buildErr.Error()
		return
	}
	ix, err := m.processes.Index()
	if err != nil || ix == nil {
		if err != nil {
			m.treeErr = err.Error()
		}
		return
	}
	if _, err := ix.Root(); err != nil {
		m.tree = nil
		m.treeErr = err.Error()
		return
	}
	m.treeErr = ""
	nav := proctree.NewTree(ix, events.Tree)
	if m.tree == nil {
		m.tree = treeview.New[proctree.Record](nav)
		return
	}
	m.tree.SetNavigator(nav)
}

func (m *Model) hasFetchIssue() (bool, string) {
	for _, err := range m.fetchErrs {
		if err != nil {
			msg := m.errMsg
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}

// adoptIdentity upgrades the breadcrumb identity once inspect data arrives,
// which matters when the container was opened by a bare CLI argument.
func (m *Model) adoptIdentity(details docker.Details) {
	if details.ID != "" {
		m.current.ID = details.ID
	}
	if details.Name != "" {
		m.current.Name = details.Name
	}
	if details.Image != "" {
		m.current.Image = details.Image
	}
	if details.Status != "" {
		m.current.Status = details.Status
	}
}

// openContainer tears into the info view and starts the per-container
// watcher. target may be an ID, an ID prefix, or a name; the runtime CLI
// resolves it.
func (m *Model) openContainer(target, label string) tea.Cmd {
	events.Container.Open(target, label)
	m.current = docker.Container{ID: target, Name: label}
	if found, ok := m.containers.Find(target); ok {
		m.current = found
	}
	m.processes.Clear()
	m.details.Clear()
	m.stats.Clear()
	m.tree = nil
	m.treeErr = ""
	m.fetchErrs = map[backend.Kind]error{}
	m.errMsg = ""
	m.forceClearInfo()
	m.setMode(ModeInfo)
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.watcher = newContainerWatcher(m.client, target, m.topInterval, m.statsInterval)
	if m.watcher == nil {
		return nil
	}
	return waitForContainerEvent(m.watcher)
}

// closeContainer returns to the picker, dropping the watcher and the whole
// snapshot state for the container.
func (m *Model) closeContainer() {
	if m.current.ID != "" {
		events.Container.Close(m.current.ID)
	}
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.current = docker.Container{}
	m.processes.Clear()
	m.details.Clear()
	m.stats.Clear()
	m.tree = nil
	m.treeErr = ""
	m.fetchErrs = map[backend.Kind]error{}
	m.errMsg = ""
	m.forceClearInfo()
	m.signal = nil
	m.setMode(ModePicker)
}

func containerItems(entries []docker.Container) []uistate.Item {
	items := make([]uistate.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, uistate.Item{ID: entry.ID, Label: containerLabel(entry)})
	}
	return items
}

func containerLabel(entry docker.Container) string {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		name = shortID(entry.ID)
	}
	parts := []string{name}
	if image := strings.TrimSpace(entry.Image); image != "" {
		parts = append(parts, image)
	}
	if status := strings.TrimSpace(entry.Status); status != "" {
		parts = append(parts, status)
	}
	return strings.Join(parts, "  ")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
