package backend

import (
	"sync"
	"time"
)

// Throttle enforces a minimum interval between successive operations.
// The zero interval disables throttling.
type Throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{}
	}
	return &Throttle{interval: interval}
}

// Wait blocks until the interval since the last admitted operation has
// elapsed, then admits the caller.
func (t *Throttle) Wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		wait := time.Until(t.next)
		if wait <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if wait > t.interval {
			wait = t.interval
		}
		time.Sleep(wait)
	}
}

// Allow admits the caller when the interval has elapsed and reports
// false otherwise, without blocking.
func (t *Throttle) Allow() bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if time.Until(t.next) > 0 {
		return false
	}
	t.next = time.Now().Add(t.interval)
	return true
}
