package events

import "dockpeek/internal/logging"

// TreeTracer reports navigation at the process-tree adapter boundary. It
// satisfies the adapter's Tracer interface; the index itself stays silent.
type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Root(pid int, ok bool, candidates int) {
	payload := map[string]interface{}{"pid": pid, "ok": ok}
	if candidates > 1 {
		payload["candidates"] = candidates
	}
	logging.Trace("tree.root", payload)
}

func (TreeTracer) Step(op string, fromPID, toPID int, ok bool) {
	logging.Trace("tree.step", map[string]interface{}{
		"op":   op,
		"from": fromPID,
		"to":   toPID,
		"ok":   ok,
	})
}

func (TreeTracer) Build(records int, err error) {
	payload := map[string]interface{}{"records": records}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("tree.build", payload)
}
