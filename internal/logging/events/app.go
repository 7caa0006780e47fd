package events

import "dockpeek/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Shutdown(reason string) {
	logging.Trace("app.shutdown", map[string]interface{}{"reason": reason})
}

func (AppTracer) WatcherStart(scope string) {
	logging.Trace("app.watcher.start", map[string]interface{}{"scope": scope})
}

func (AppTracer) WatcherStop(scope string) {
	logging.Trace("app.watcher.stop", map[string]interface{}{"scope": scope})
}
