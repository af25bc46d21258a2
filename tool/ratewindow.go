package tool

import (
	"sync"
	"time"
)

// RateWindow decides, per tool id, whether a new call is allowed under an
// "at most N calls per rolling window" policy and records it if so. The
// prune-check-append sequence runs as one atomic unit under a single lock;
// sharding by id would be an optimization, not a correctness requirement.
type RateWindow struct {
	mu    sync.Mutex
	calls map[string][]time.Time
	now   func() time.Time
}

// NewRateWindow constructs an empty rate window using the wall clock.
func NewRateWindow() *RateWindow {
	return &RateWindow{
		calls: make(map[string][]time.Time),
		now:   time.Now,
	}
}

// Allow reports whether a call to id is permitted under limit calls per
// window, recording the call when it is. A limit <= 0 always allows without
// recording.
func (w *RateWindow) Allow(id string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-window)

	recent := w.calls[id][:0]
	for _, ts := range w.calls[id] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= limit {
		w.calls[id] = recent
		return false
	}

	w.calls[id] = append(recent, now)
	return true
}
