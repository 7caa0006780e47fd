package events

import (
	"time"

	"dockpeek/internal/logging"
)

type DockerTracer struct{}

var Docker = DockerTracer{}

func (DockerTracer) Exec(args []string, took time.Duration, err error) {
	payload := map[string]interface{}{
		"args": args,
		"ms":   took.Milliseconds(),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("docker.exec", payload)
}

func (DockerTracer) Snapshot(kind string, rows int) {
	logging.Trace("docker.snapshot", map[string]interface{}{"kind": kind, "rows": rows})
}
