package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiterSet_EvictIdle(t *testing.T) {
	s := &limiterSet{limiters: map[string]*limiterEntry{}, rps: rate.Limit(1), burst: 1}
	now := time.Now()
	s.get("old", now.Add(-2*time.Hour))
	s.get("fresh", now)

	s.evictIdle(now.Add(-time.Hour))

	if _, ok := s.limiters["old"]; ok {
		t.Error("idle identity should be evicted")
	}
	if _, ok := s.limiters["fresh"]; !ok {
		t.Error("recent identity should be kept")
	}
}

func TestLimiterSet_EvictLoopStopsOnDone(t *testing.T) {
	s := &limiterSet{limiters: map[string]*limiterEntry{}, rps: rate.Limit(1), burst: 1}
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		s.evictLoop(done, time.Millisecond, time.Hour)
		close(exited)
	}()

	close(done)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("evictLoop still running after done was closed")
	}
}
