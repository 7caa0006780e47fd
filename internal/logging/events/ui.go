package events

import "dockpeek/internal/logging"

// UITracer reports mode changes and cursor movement in the TUI.
type UITracer struct{}

// FilterTracer reports edits to the picker filter line.
type FilterTracer struct{}

// CommandTracer follows a menu action from queue to result.
type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Mode(mode string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode})
}

func (UITracer) PickerEnter(containerID, name, filter string) {
	logging.Trace("picker.enter", map[string]interface{}{
		"container": containerID,
		"name":      name,
		"filter":    filter,
	})
}

func (UITracer) PickerCursor(cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) TreeCursor(pid int, cursor int) {
	logging.Trace("tree.cursor", map[string]interface{}{"pid": pid, "cursor": cursor})
}

func (UITracer) TreeFold(action string, pid int) {
	logging.Trace("tree.fold", map[string]interface{}{"action": action, "pid": pid})
}

func (UITracer) Back(from string) {
	logging.Trace("ui.back", map[string]interface{}{"from": from})
}

func (UITracer) Refresh(scope string) {
	logging.Trace("ui.refresh", map[string]interface{}{"scope": scope})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) CursorWord(levelID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
