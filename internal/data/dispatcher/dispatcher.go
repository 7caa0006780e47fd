package dispatcher

import (
	"dockpeek/internal/backend"
	"dockpeek/internal/logging/events"
	"dockpeek/internal/state"
)

// Result reports which facets of the stores a handled event updated.
type Result struct {
	ContainersUpdated bool
	ProcessesUpdated  bool
	DetailsUpdated    bool
	StatsUpdated      bool
	BuildErr          error
}

// Dispatcher routes backend events into the typed stores. One event in,
// update flags out; fetch errors leave the stores untouched.
type Dispatcher struct {
	containers state.ContainerStore
	processes  state.ProcessStore
	details    state.DetailsStore
	stats      state.StatsStore
}

func New(c state.ContainerStore, p state.ProcessStore, d state.DetailsStore, s state.StatsStore) *Dispatcher {
	return &Dispatcher{containers: c, processes: p, details: d, stats: s}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindContainers:
		d.containers.SetEntries(evt.Containers)
		res.ContainersUpdated = true
	case backend.KindProcesses:
		err := d.processes.Set(evt.Processes)
		events.Tree.Build(len(evt.Processes.Rows), err)
		res.ProcessesUpdated = true
		res.BuildErr = err
	case backend.KindDetails:
		d.details.Set(evt.Details)
		res.DetailsUpdated = true
	case backend.KindStats:
		d.stats.Append(evt.Stats)
		res.StatsUpdated = true
	}
	return res
}
