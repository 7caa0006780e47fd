package state

import (
	"sync"

	"dockpeek/internal/docker"
	"dockpeek/internal/proctree"
)

// ProcessStore holds the latest top snapshot for one container together
// with the index built from it. The index is built exactly once per
// snapshot, inside Set; readers share the immutable result.
type ProcessStore interface {
	Set(docker.TopSnapshot) error
	Snapshot() docker.TopSnapshot
	Index() (*proctree.Index, error)
	Clear()
}

type processStore struct {
	mu       sync.RWMutex
	snapshot docker.TopSnapshot
	index    *proctree.Index
	buildErr error
}

func NewProcessStore() ProcessStore {
	return &processStore{}
}

func (s *processStore) Set(snapshot docker.TopSnapshot) error {
	index, err := proctree.Build(snapshotRows(snapshot))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.index = index
	s.buildErr = err
	return err
}

func (s *processStore) Snapshot() docker.TopSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Index returns the current index, or the error from the last build.
// Both are nil before the first snapshot arrives.
func (s *processStore) Index() (*proctree.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.buildErr
}

// Clear drops the snapshot and index wholesale, for when the watched
// container changes.
func (s *processStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = docker.TopSnapshot{}
	s.index = nil
	s.buildErr = nil
}

func snapshotRows(snapshot docker.TopSnapshot) []proctree.Row {
	rows := make([]proctree.Row, 0, len(snapshot.Rows))
	for _, r := range snapshot.Rows {
		rows = append(rows, proctree.Row{PID: r.PID, PPID: r.PPID, Command: r.Command})
	}
	return rows
}
