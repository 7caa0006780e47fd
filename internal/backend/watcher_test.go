package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dockpeek/internal/docker"
)

type fakeClient struct {
	mu            sync.Mutex
	containers    []docker.Container
	containersErr error
	snapshot      docker.TopSnapshot
	topErr        error
	details       docker.Details
	stats         docker.StatsSample
	topCalls      int
}

func (f *fakeClient) setContainers(containers []docker.Container, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containers = containers
	f.containersErr = err
}

func (f *fakeClient) setSnapshot(snapshot docker.TopSnapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snapshot
	f.topErr = err
}

func (f *fakeClient) Containers(ctx context.Context) ([]docker.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containers, f.containersErr
}

func (f *fakeClient) Top(ctx context.Context, id string) (docker.TopSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls++
	return f.snapshot, f.topErr
}

func (f *fakeClient) Inspect(ctx context.Context, id string) (docker.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details, nil
}

func (f *fakeClient) Stats(ctx context.Context, id string) (docker.StatsSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, nil
}

func waitEvent(t *testing.T, events <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case evt, ok := <-events:
		if !ok {
			t.Fatalf("events channel closed while waiting")
		}
		return evt
	case <-time.After(timeout):
		t.Fatalf("timeout waiting for event")
	}
	return Event{}
}

func waitKind(t *testing.T, events <-chan Event, kind Kind, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				t.Fatalf("events channel closed while waiting for %v", kind)
			}
			if evt.Kind == kind {
				return evt
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %v event", kind)
		}
	}
}

func TestListWatcherDeliversContainers(t *testing.T) {
	fake := &fakeClient{}
	fake.setContainers([]docker.Container{{ID: "a", Name: "redis"}}, nil)
	w := NewListWatcher(fake, 50*time.Millisecond)
	defer w.Stop()

	evt := waitEvent(t, w.Events(), 2*time.Second)
	if evt.Kind != KindContainers {
		t.Fatalf("unexpected kind %v", evt.Kind)
	}
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	if len(evt.Containers) != 1 || evt.Containers[0].ID != "a" {
		t.Fatalf("unexpected payload %#v", evt.Containers)
	}
}

func TestListWatcherFiltersUnchangedSnapshots(t *testing.T) {
	fake := &fakeClient{}
	fake.setContainers([]docker.Container{{ID: "a"}}, nil)
	w := NewListWatcher(fake, 30*time.Millisecond)
	defer w.Stop()

	first := waitEvent(t, w.Events(), 2*time.Second)
	if first.Err != nil {
		t.Fatalf("unexpected error: %v", first.Err)
	}

	// Identical polls must not produce further events.
	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event for unchanged snapshot, got %#v", evt)
	case <-time.After(400 * time.Millisecond):
	}

	fake.setContainers([]docker.Container{{ID: "a"}, {ID: "b"}}, nil)
	second := waitEvent(t, w.Events(), 2*time.Second)
	if len(second.Containers) != 2 {
		t.Fatalf("expected changed snapshot, got %#v", second.Containers)
	}
}

func TestListWatcherDeliversFetchErrors(t *testing.T) {
	fake := &fakeClient{}
	fake.setContainers(nil, errors.New("daemon unreachable"))
	w := NewListWatcher(fake, 50*time.Millisecond)
	defer w.Stop()

	evt := waitEvent(t, w.Events(), 2*time.Second)
	if evt.Err == nil || evt.Err.Error() != "daemon unreachable" {
		t.Fatalf("expected fetch error event, got %#v", evt)
	}

	// Older error events may still sit in the buffer; the recovery
	// snapshot must eventually come through.
	fake.setContainers([]docker.Container{{ID: "a"}}, nil)
	deadline := time.After(3 * time.Second)
	for {
		select {
		case recovered, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if recovered.Err != nil {
				continue
			}
			if len(recovered.Containers) != 1 {
				t.Fatalf("expected recovery event, got %#v", recovered)
			}
			return
		case <-deadline:
			t.Fatalf("timeout waiting for recovery event")
		}
	}
}

func TestContainerWatcherEmitsAllKinds(t *testing.T) {
	fake := &fakeClient{
		details: docker.Details{ID: "a1b2", Name: "redis"},
		stats:   docker.StatsSample{CPUPercent: 1.5},
	}
	fake.setSnapshot(docker.TopSnapshot{
		ContainerID: "a1b2",
		Rows:        []docker.ProcessRow{{PID: "1", PPID: "0", Command: "init"}},
	}, nil)

	w := NewContainerWatcher(fake, "a1b2", 50*time.Millisecond, 50*time.Millisecond)
	defer w.Stop()

	seen := map[Kind]bool{}
	deadline := time.After(3 * time.Second)
	for len(seen) < 3 {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if evt.Err != nil {
				t.Fatalf("unexpected error event: %v", evt.Err)
			}
			seen[evt.Kind] = true
		case <-deadline:
			t.Fatalf("timeout, saw kinds %v", seen)
		}
	}
	if !seen[KindProcesses] || !seen[KindDetails] || !seen[KindStats] {
		t.Fatalf("missing kinds: %v", seen)
	}
}

func TestStatsSkipChangeFilter(t *testing.T) {
	fake := &fakeClient{stats: docker.StatsSample{CPUPercent: 2}}
	fake.setSnapshot(docker.TopSnapshot{ContainerID: "a"}, nil)

	w := NewContainerWatcher(fake, "a", time.Hour, 120*time.Millisecond)
	defer w.Stop()

	statsSeen := 0
	deadline := time.After(3 * time.Second)
	for statsSeen < 2 {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if evt.Kind == KindStats {
				statsSeen++
			}
		case <-deadline:
			t.Fatalf("timeout, saw %d identical stats events", statsSeen)
		}
	}
}

func TestRefreshNudgesPollers(t *testing.T) {
	fake := &fakeClient{}
	fake.setContainers([]docker.Container{{ID: "a"}}, nil)
	w := NewListWatcher(fake, time.Hour)
	defer w.Stop()

	waitEvent(t, w.Events(), 2*time.Second)

	fake.setContainers([]docker.Container{{ID: "a"}, {ID: "b"}}, nil)
	if !w.Refresh() {
		t.Fatalf("expected first refresh to pass")
	}
	evt := waitEvent(t, w.Events(), 2*time.Second)
	if len(evt.Containers) != 2 {
		t.Fatalf("expected refreshed snapshot, got %#v", evt.Containers)
	}
	if w.Refresh() {
		t.Fatalf("expected burst refresh to be throttled")
	}
}

func TestStopClosesEventsChannel(t *testing.T) {
	fake := &fakeClient{}
	fake.setContainers([]docker.Container{{ID: "a"}}, nil)
	w := NewListWatcher(fake, 50*time.Millisecond)

	waitEvent(t, w.Events(), 2*time.Second)
	w.Stop()
	w.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel never closed")
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindContainers: "containers",
		KindProcesses:  "processes",
		KindDetails:    "details",
		KindStats:      "stats",
		Kind(99):       "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestProcessesEqualIgnoresFetchTime(t *testing.T) {
	base := docker.TopSnapshot{
		ContainerID: "a",
		Titles:      []string{"PID", "PPID", "COMMAND"},
		Rows:        []docker.ProcessRow{{PID: "1", PPID: "0", Command: "init"}},
		FetchedAt:   time.Now(),
	}
	later := base
	later.FetchedAt = base.FetchedAt.Add(time.Minute)
	if !processesEqual(Event{Processes: base}, Event{Processes: later}) {
		t.Fatalf("expected snapshots equal despite fetch time")
	}
	changed := base
	changed.Rows = []docker.ProcessRow{{PID: "2", PPID: "0", Command: "init"}}
	if processesEqual(Event{Processes: base}, Event{Processes: changed}) {
		t.Fatalf("expected differing rows to compare unequal")
	}
}
