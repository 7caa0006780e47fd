package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/logging/events"
)

const signalTimeout = 5 * time.Second

var signalOrder = []string{
	"terminate",
	"kill",
	"interrupt",
	"continue",
	"stop",
	"quit",
	"hangup",
}

var signalNames = map[string]string{
	"terminate": "TERM",
	"kill":      "KILL",
	"interrupt": "INT",
	"continue":  "CONT",
	"stop":      "STOP",
	"quit":      "QUIT",
	"hangup":    "HUP",
}

// SignalName resolves a menu item ID to the signal it delivers.
func SignalName(id string) (string, bool) {
	name, ok := signalNames[strings.TrimPrefix(id, "signal:")]
	return name, ok
}

// SignalAction sends the chosen signal to the process carried by the context.
func SignalAction(ctx Context, item Item) tea.Cmd {
	name, ok := SignalName(item.ID)
	if !ok {
		return func() tea.Msg {
			return ActionResult{Err: fmt.Errorf("unknown signal %q", item.ID)}
		}
	}
	if ctx.Client == nil {
		return func() tea.Msg {
			return ActionResult{Err: fmt.Errorf("no runtime client configured")}
		}
	}
	if strings.TrimSpace(ctx.ContainerID) == "" {
		return func() tea.Msg {
			return ActionResult{Err: fmt.Errorf("no container selected")}
		}
	}
	if ctx.PID <= 0 {
		return func() tea.Msg {
			return ActionResult{Err: fmt.Errorf("no process selected")}
		}
	}
	return func() tea.Msg {
		events.Container.Signal(ctx.ContainerID, ctx.PID, name)
		callCtx, cancel := context.WithTimeout(context.Background(), signalTimeout)
		defer cancel()
		if err := ctx.Client.Kill(callCtx, ctx.ContainerID, ctx.PID, name); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Sent SIG%s to [%d] %s", name, ctx.PID, commandTitle(ctx.Command))}
	}
}

// commandTitle trims a full command line down to its executable for info lines.
func commandTitle(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "process"
	}
	return fields[0]
}
