package backend

import (
	"testing"
	"time"
)

func TestThrottleWaitEnforcesInterval(t *testing.T) {
	throttle := NewThrottle(60 * time.Millisecond)
	throttle.Wait()
	started := time.Now()
	throttle.Wait()
	if elapsed := time.Since(started); elapsed < 50*time.Millisecond {
		t.Fatalf("expected second wait to block near the interval, took %v", elapsed)
	}
}

func TestThrottleAllow(t *testing.T) {
	throttle := NewThrottle(80 * time.Millisecond)
	if !throttle.Allow() {
		t.Fatalf("expected first call admitted")
	}
	if throttle.Allow() {
		t.Fatalf("expected burst call rejected")
	}
	time.Sleep(100 * time.Millisecond)
	if !throttle.Allow() {
		t.Fatalf("expected call admitted after interval")
	}
}

func TestThrottleDisabled(t *testing.T) {
	throttle := NewThrottle(0)
	for i := 0; i < 3; i++ {
		if !throttle.Allow() {
			t.Fatalf("expected disabled throttle to admit everything")
		}
	}
	done := make(chan struct{})
	go func() {
		throttle.Wait()
		throttle.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected disabled throttle to never block")
	}
}

func TestThrottleNilReceiver(t *testing.T) {
	var throttle *Throttle
	throttle.Wait()
	if !throttle.Allow() {
		t.Fatalf("expected nil throttle to admit")
	}
}
