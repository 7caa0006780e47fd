package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/logging/events"
	"dockpeek/internal/menu"
)

// handleActionResultMsg lands the outcome of a menu action. Signals are
// fire-and-forget, so the result is shown inline and the session stays open;
// the container watcher picks up the process table change on its next poll.
func (m *Model) handleActionResultMsg(message tea.Msg) tea.Cmd {
	result, ok := message.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	label := m.pendingLabel
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.forceClearInfo()
		m.errMsg = result.Err.Error()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else if label != "" {
		m.setInfo(label + " done")
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	if m.watcher != nil {
		m.watcher.Refresh()
	}
	return nil
}
