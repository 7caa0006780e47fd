package backend

import (
	"context"
	"reflect"
	"slices"
	"sync"
	"time"

	"dockpeek/internal/docker"
	"dockpeek/internal/logging/events"
)

// Kind identifies the facet of runtime state carried by an Event.
type Kind int

const (
	KindContainers Kind = iota
	KindProcesses
	KindDetails
	KindStats
)

func (k Kind) String() string {
	switch k {
	case KindContainers:
		return "containers"
	case KindProcesses:
		return "processes"
	case KindDetails:
		return "details"
	case KindStats:
		return "stats"
	}
	return "unknown"
}

// Event conveys one fresh snapshot or a fetch error. Only the field
// matching Kind is populated.
type Event struct {
	Kind       Kind
	Containers []docker.Container
	Processes  docker.TopSnapshot
	Details    docker.Details
	Stats      docker.StatsSample
	Err        error
}

// Client is the slice of the runtime client the watchers poll through.
type Client interface {
	Containers(ctx context.Context) ([]docker.Container, error)
	Top(ctx context.Context, id string) (docker.TopSnapshot, error)
	Inspect(ctx context.Context, id string) (docker.Details, error)
	Stats(ctx context.Context, id string) (docker.StatsSample, error)
}

type fetchFunc func(ctx context.Context) Event

// equalFunc reports whether two successful events carry the same
// snapshot; matching events are dropped instead of delivered.
type equalFunc func(prev, next Event) bool

// Watcher polls the runtime on fixed intervals and publishes events.
// Each facet gets its own goroutine so a slow stats call cannot stall
// the process snapshots.
type Watcher struct {
	scope string

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	wg      sync.WaitGroup
	nudges  []chan struct{}
	refresh *Throttle
	stopped sync.Once
}

// NewListWatcher polls the container list.
func NewListWatcher(client Client, interval time.Duration) *Watcher {
	w := newWatcher("list")
	w.addPoller(interval, func(ctx context.Context) Event {
		containers, err := client.Containers(ctx)
		return Event{Kind: KindContainers, Containers: containers, Err: err}
	}, containersEqual)
	w.start()
	return w
}

// NewContainerWatcher polls top, details and stats for one container.
// Details ride the top interval; stats have their own cadence and skip
// the change filter because every sample extends the graphs.
func NewContainerWatcher(client Client, id string, topInterval, statsInterval time.Duration) *Watcher {
	w := newWatcher("container:" + id)
	w.addPoller(topInterval, func(ctx context.Context) Event {
		snapshot, err := client.Top(ctx, id)
		return Event{Kind: KindProcesses, Processes: snapshot, Err: err}
	}, processesEqual)
	w.addPoller(topInterval, func(ctx context.Context) Event {
		details, err := client.Inspect(ctx, id)
		return Event{Kind: KindDetails, Details: details, Err: err}
	}, detailsEqual)
	w.addPoller(statsInterval, func(ctx context.Context) Event {
		sample, err := client.Stats(ctx, id)
		return Event{Kind: KindStats, Stats: sample, Err: err}
	}, nil)
	w.start()
	return w
}

func newWatcher(scope string) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		scope:   scope,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 16),
		refresh: NewThrottle(500 * time.Millisecond),
	}
}

func (w *Watcher) start() {
	events.App.WatcherStart(w.scope)
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
}

// Events returns the channel of backend events. It closes after Stop
// once every poller has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch
// completes; use Wait when a clean drain is required.
func (w *Watcher) Stop() {
	w.stopped.Do(func() {
		events.App.WatcherStop(w.scope)
	})
	w.cancel()
}

// Wait blocks until all poller goroutines have exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// Refresh nudges every poller to fetch immediately. Bursts collapse:
// requests inside the throttle window report false and do nothing.
func (w *Watcher) Refresh() bool {
	if !w.refresh.Allow() {
		return false
	}
	for _, nudge := range w.nudges {
		select {
		case nudge <- struct{}{}:
		default:
		}
	}
	return true
}

func (w *Watcher) addPoller(interval time.Duration, fetch fetchFunc, equal equalFunc) {
	if interval <= 0 {
		interval = time.Second
	}
	nudge := make(chan struct{}, 1)
	w.nudges = append(w.nudges, nudge)
	w.wg.Add(1)
	go w.poll(interval, nudge, fetch, equal)
}

func (w *Watcher) poll(interval time.Duration, nudge chan struct{}, fetch fetchFunc, equal equalFunc) {
	defer w.wg.Done()

	// Floor between consecutive fetches, so a nudge landing right on a
	// tick cannot double-hit the runtime CLI.
	throttle := NewThrottle(100 * time.Millisecond)
	var last Event
	delivered := false
	emit := func() bool {
		throttle.Wait()
		evt := fetch(w.ctx)
		if delivered && evt.Err == nil && last.Err == nil && equal != nil && equal(last, evt) {
			return true
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			last = evt
			delivered = true
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-nudge:
			if !emit() {
				return
			}
		}
	}
}

func containersEqual(prev, next Event) bool {
	return slices.Equal(prev.Containers, next.Containers)
}

// processesEqual ignores FetchedAt: a byte-identical process table on
// the next tick is still the same snapshot.
func processesEqual(prev, next Event) bool {
	a, b := prev.Processes, next.Processes
	return a.ContainerID == b.ContainerID &&
		slices.Equal(a.Titles, b.Titles) &&
		slices.Equal(a.Rows, b.Rows)
}

func detailsEqual(prev, next Event) bool {
	return reflect.DeepEqual(prev.Details, next.Details)
}
