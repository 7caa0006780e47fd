package events

import "dockpeek/internal/logging"

type ContainerTracer struct{}

var Container = ContainerTracer{}

func (ContainerTracer) Open(id, name string) {
	logging.Trace("container.open", map[string]interface{}{"id": id, "name": name})
}

func (ContainerTracer) Close(id string) {
	logging.Trace("container.close", map[string]interface{}{"id": id})
}

func (ContainerTracer) Signal(id string, pid int, signal string) {
	logging.Trace("container.signal", map[string]interface{}{"id": id, "pid": pid, "signal": signal})
}
