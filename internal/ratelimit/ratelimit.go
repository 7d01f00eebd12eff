package ratelimit

import (
	"sync"
	"time"
)

// Limiter gates an action per key. Implementations must make the
// check-and-record step atomic so two concurrent callers cannot both pass
// when only one slot remains. In a multi-instance deployment this interface
// would be backed by a shared counter store instead of process memory.
type Limiter interface {
	// TryAcquire records one attempt for key and reports whether it was
	// within the allowed budget. A denied attempt is not recorded.
	TryAcquire(key string) bool
}

// SlidingWindow is an in-memory Limiter allowing at most `limit` attempts
// per key within a rolling window.
type SlidingWindow struct {
	mu       sync.Mutex
	hits     map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSlidingWindow creates a limiter and starts a background goroutine that
// evicts idle keys every two windows. Close stops the goroutine.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	sw := newSlidingWindow(limit, window, time.Now)
	go sw.cleanup(window * 2)
	return sw
}

func newSlidingWindow(limit int, window time.Duration, now func() time.Time) *SlidingWindow {
	return &SlidingWindow{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    now,
		stop:   make(chan struct{}),
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (sw *SlidingWindow) Close() {
	sw.stopOnce.Do(func() { close(sw.stop) })
}

var _ Limiter = (*SlidingWindow)(nil)

// TryAcquire implements Limiter.
func (sw *SlidingWindow) TryAcquire(key string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	recent := sw.hits[key][:0]
	for _, ts := range sw.hits[key] {
		if now.Sub(ts) < sw.window {
			recent = append(recent, ts)
		}
	}
	if len(recent) >= sw.limit {
		sw.hits[key] = recent
		return false
	}
	sw.hits[key] = append(recent, now)
	return true
}

func (sw *SlidingWindow) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-sw.stop:
			return
		case <-ticker.C:
			sw.mu.Lock()
			now := sw.now()
			for key, stamps := range sw.hits {
				if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) > sw.window {
					delete(sw.hits, key)
				}
			}
			sw.mu.Unlock()
		}
	}
}
