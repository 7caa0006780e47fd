package state

import (
	"sync"
	"time"

	"dockpeek/internal/docker"
)

type ContainerStore interface {
	Entries() []docker.Container
	SetEntries([]docker.Container)
	FetchedAt() time.Time
	Find(id string) (docker.Container, bool)
	Len() int
}

type containerStore struct {
	mu        sync.RWMutex
	entries   []docker.Container
	fetchedAt time.Time
}

func NewContainerStore() ContainerStore {
	return &containerStore{}
}

func (s *containerStore) Entries() []docker.Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneContainers(s.entries)
}

func (s *containerStore) SetEntries(entries []docker.Container) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cloneContainers(entries)
	s.fetchedAt = time.Now()
}

func (s *containerStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func (s *containerStore) Find(id string) (docker.Container, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return docker.Container{}, false
}

func (s *containerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cloneContainers(entries []docker.Container) []docker.Container {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]docker.Container, len(entries))
	copy(dup, entries)
	return dup
}
