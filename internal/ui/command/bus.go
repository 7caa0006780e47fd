package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/logging/events"
	"dockpeek/internal/menu"
)

// Request names a single action dispatch: which menu entry fired, plus the
// handler and item payload that should run for it.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus turns menu actions into Bubble Tea commands. It holds no state; it
// exists so dispatch has one seam for tracing.
type Bus struct{}

// New returns a ready Bus.
func New() *Bus {
	return &Bus{}
}

// Execute schedules req against ctx. The returned command runs the handler
// when the runtime invokes it; queue, skip, no-op, and result transitions
// all land in the trace log under the request ID.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg { return b.run(ctx, req) }
}

func (b *Bus) run(ctx menu.Context, req Request) tea.Msg {
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	cmd := req.Handler(ctx, req.Item)
	if cmd == nil {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	msg := cmd()
	events.Command.Result(req.ID, req.Label, resultType(msg))
	return msg
}

// resultType names the produced message for the trace, marking failed
// actions so a log reader can spot them without decoding payloads.
func resultType(msg tea.Msg) string {
	if result, ok := msg.(menu.ActionResult); ok && result.Err != nil {
		return "menu.ActionResult(error)"
	}
	return fmt.Sprintf("%T", msg)
}
