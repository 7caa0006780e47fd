package ui

import tea "github.com/charmbracelet/bubbletea"

// chainLimit bounds how many messages a single Send may produce. A cycle in
// a command chain would otherwise spin the test binary forever.
const chainLimit = 256

// Harness feeds messages to a Model the way the Bubble Tea runtime would,
// but synchronously: every command an update returns runs on the calling
// goroutine before Send returns. Asynchronous seams (watchers, fetch
// factories) must be stubbed before sending.
type Harness struct {
	model *Model
	steps int
}

// NewHarness wraps model for programmatic driving.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send applies msg and follows the resulting command chain to exhaustion.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.steps = 0
	h.deliver(msg)
}

func (h *Harness) deliver(msg tea.Msg) {
	if msg == nil || h.steps >= chainLimit {
		return
	}
	h.steps++
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			h.follow(cmd)
		}
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.follow(cmd)
}

func (h *Harness) follow(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	h.deliver(cmd())
}

// View renders the model's current frame.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model for state assertions.
func (h *Harness) Model() *Model {
	return h.model
}
