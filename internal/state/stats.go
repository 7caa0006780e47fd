package state

import (
	"sync"

	"dockpeek/internal/docker"
)

// statsCapacity bounds the sample ring; at the default poll interval
// this covers roughly the last four minutes.
const statsCapacity = 120

// StatsStore keeps a bounded ring of resource samples for the usage
// graphs plus the most recent reading.
type StatsStore interface {
	Append(docker.StatsSample)
	Latest() (docker.StatsSample, bool)
	Samples() []docker.StatsSample
	CPUHistory() []float64
	MemHistory() []float64
	Len() int
	Clear()
}

type statsStore struct {
	mu      sync.RWMutex
	samples []docker.StatsSample
	start   int
	count   int
}

func NewStatsStore() StatsStore {
	return &statsStore{samples: make([]docker.StatsSample, statsCapacity)}
}

func (s *statsStore) Append(sample docker.StatsSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count < len(s.samples) {
		s.samples[(s.start+s.count)%len(s.samples)] = sample
		s.count++
		return
	}
	s.samples[s.start] = sample
	s.start = (s.start + 1) % len(s.samples)
}

func (s *statsStore) Latest() (docker.StatsSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.count == 0 {
		return docker.StatsSample{}, false
	}
	return s.samples[(s.start+s.count-1)%len(s.samples)], true
}

// Samples returns the ring contents oldest first.
func (s *statsStore) Samples() []docker.StatsSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]docker.StatsSample, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, s.samples[(s.start+i)%len(s.samples)])
	}
	return out
}

func (s *statsStore) CPUHistory() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, s.samples[(s.start+i)%len(s.samples)].CPUPercent)
	}
	return out
}

func (s *statsStore) MemHistory() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, s.samples[(s.start+i)%len(s.samples)].MemPercent)
	}
	return out
}

func (s *statsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *statsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = 0
	s.count = 0
}
