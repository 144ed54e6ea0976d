// Package ratelimit provides fixed-window rate limiters behind the
// domain.RateLimiter port: a process-local in-memory counter and a
// Redis-backed one for deployments with more than one instance.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window counter keyed by client ID.
// Entries live for the life of the process; a stale entry is overwritten the
// next time its key is seen after the window has elapsed. Limits are neither
// shared across instances nor preserved across restarts.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter returns a limiter allowing max requests per client ID
// within each fixed window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow implements domain.RateLimiter. A new or expired window starts a
// fresh entry with count 1. Within a live window the count increments up to
// the maximum; at the maximum the request is denied without incrementing.
func (l *MemoryLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[clientID]
	if !ok || now.After(e.resetAt) {
		l.entries[clientID] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	if e.count >= l.max {
		return false, nil
	}
	e.count++
	return true, nil
}
