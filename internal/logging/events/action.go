package events

import "dockpeek/internal/logging"

type ActionTracer struct{}

var Action = ActionTracer{}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (ActionTracer) Error(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("action.error", payload)
}
