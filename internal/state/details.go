package state

import (
	"sync"
	"time"

	"dockpeek/internal/docker"
)

type DetailsStore interface {
	Set(docker.Details)
	Get() (docker.Details, bool)
	FetchedAt() time.Time
	Clear()
}

type detailsStore struct {
	mu        sync.RWMutex
	details   docker.Details
	fetchedAt time.Time
	ok        bool
}

func NewDetailsStore() DetailsStore {
	return &detailsStore{}
}

func (s *detailsStore) Set(details docker.Details) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = details
	s.fetchedAt = time.Now()
	s.ok = true
}

func (s *detailsStore) Get() (docker.Details, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.details, s.ok
}

func (s *detailsStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func (s *detailsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = docker.Details{}
	s.fetchedAt = time.Time{}
	s.ok = false
}
