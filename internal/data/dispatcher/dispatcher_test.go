package dispatcher

import (
	"errors"
	"testing"

	"dockpeek/internal/backend"
	"dockpeek/internal/docker"
	"dockpeek/internal/state"
)

func newDispatcher() (*Dispatcher, state.ContainerStore, state.ProcessStore, state.DetailsStore, state.StatsStore) {
	containers := state.NewContainerStore()
	processes := state.NewProcessStore()
	details := state.NewDetailsStore()
	stats := state.NewStatsStore()
	return New(containers, processes, details, stats), containers, processes, details, stats
}

func TestHandleContainersEvent(t *testing.T) {
	d, containers, _, _, _ := newDispatcher()
	res := d.Handle(backend.Event{
		Kind:       backend.KindContainers,
		Containers: []docker.Container{{ID: "a", Name: "redis"}},
	})
	if !res.ContainersUpdated {
		t.Fatalf("expected containers updated, got %#v", res)
	}
	if res.ProcessesUpdated || res.DetailsUpdated || res.StatsUpdated {
		t.Fatalf("expected only containers flag, got %#v", res)
	}
	if containers.Len() != 1 {
		t.Fatalf("expected store populated")
	}
}

func TestHandleProcessesEventBuildsIndex(t *testing.T) {
	d, _, processes, _, _ := newDispatcher()
	res := d.Handle(backend.Event{
		Kind: backend.KindProcesses,
		Processes: docker.TopSnapshot{
			ContainerID: "a",
			Rows: []docker.ProcessRow{
				{PID: "1", PPID: "0", Command: "init"},
				{PID: "2", PPID: "1", Command: "worker"},
			},
		},
	})
	if !res.ProcessesUpdated || res.BuildErr != nil {
		t.Fatalf("unexpected result %#v", res)
	}
	index, err := processes.Index()
	if err != nil || index == nil || index.Len() != 2 {
		t.Fatalf("expected built index, got %v %v", index, err)
	}
}

func TestHandleProcessesEventReportsBuildError(t *testing.T) {
	d, _, processes, _, _ := newDispatcher()
	res := d.Handle(backend.Event{
		Kind: backend.KindProcesses,
		Processes: docker.TopSnapshot{
			Rows: []docker.ProcessRow{{PID: "nope", PPID: "0", Command: "x"}},
		},
	})
	if !res.ProcessesUpdated {
		t.Fatalf("expected processes flag even on build failure")
	}
	if res.BuildErr == nil {
		t.Fatalf("expected build error in result")
	}
	if _, err := processes.Index(); err == nil {
		t.Fatalf("expected store to keep build error")
	}
}

func TestHandleDetailsAndStats(t *testing.T) {
	d, _, _, details, stats := newDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindDetails, Details: docker.Details{ID: "a"}})
	if !res.DetailsUpdated {
		t.Fatalf("expected details updated")
	}
	if _, ok := details.Get(); !ok {
		t.Fatalf("expected details stored")
	}
	res = d.Handle(backend.Event{Kind: backend.KindStats, Stats: docker.StatsSample{CPUPercent: 3}})
	if !res.StatsUpdated {
		t.Fatalf("expected stats updated")
	}
	if stats.Len() != 1 {
		t.Fatalf("expected one sample in ring")
	}
}

func TestHandleErrorEventTouchesNothing(t *testing.T) {
	d, containers, processes, details, stats := newDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindContainers, Err: errors.New("boom")})
	if res != (Result{}) {
		t.Fatalf("expected empty result for error event, got %#v", res)
	}
	if containers.Len() != 0 || stats.Len() != 0 {
		t.Fatalf("expected stores untouched")
	}
	if _, ok := details.Get(); ok {
		t.Fatalf("expected details untouched")
	}
	if index, err := processes.Index(); index != nil || err != nil {
		t.Fatalf("expected process store untouched")
	}
}
