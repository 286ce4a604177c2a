package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// limiterSet keeps one token bucket per key (client IP or user id). Idle
// buckets are dropped by a sweeper started on first use.
type limiterSet struct {
	limit rate.Limit
	burst int

	mu         sync.Mutex
	entries    map[string]*limiterEntry
	cleanupRun bool
}

func newLimiterSet(limit rate.Limit, burst int) *limiterSet {
	return &limiterSet{
		limit:   limit,
		burst:   burst,
		entries: make(map[string]*limiterEntry),
	}
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCleanupOnce()
	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (s *limiterSet) allow(key string) bool {
	return s.get(key).Allow()
}

func (s *limiterSet) startCleanupOnce() {
	if s.cleanupRun {
		return
	}
	s.cleanupRun = true
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			s.sweep(time.Now())
		}
	}()
}

func (s *limiterSet) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if now.Sub(e.lastUse) > limiterTTL {
			delete(s.entries, k)
		}
	}
}

// size is used by tests.
func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
