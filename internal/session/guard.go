// Package session holds the volatile per-process login protections: the
// failed-attempt lockout guard and the idle-lock policy. Nothing here is
// persisted; a process restart clears all lockouts.
package session

import (
	"sync"
	"time"
)

// Guard tracks failed login attempts per account name and locks a name out
// for a fixed window once the attempt threshold is reached.
type Guard struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	failed      map[string]int
	lockedUntil map[string]time.Time
}

// NewGuard creates a guard that locks a name for window after maxAttempts
// consecutive failures.
func NewGuard(maxAttempts int, window time.Duration) *Guard {
	return &Guard{
		maxAttempts: maxAttempts,
		window:      window,
		failed:      make(map[string]int),
		lockedUntil: make(map[string]time.Time),
	}
}

// CheckLocked reports whether name is locked out at now, and until when.
func (g *Guard) CheckLocked(name string, now time.Time) (bool, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	until, ok := g.lockedUntil[name]
	if !ok || !now.Before(until) {
		return false, time.Time{}
	}
	return true, until
}

// RecordFailure counts one failed attempt. Reaching the threshold arms the
// lockout and resets the counter, so the window restarts from zero attempts
// once it expires.
func (g *Guard) RecordFailure(name string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.failed[name]++
	if g.failed[name] >= g.maxAttempts {
		g.lockedUntil[name] = now.Add(g.window)
		g.failed[name] = 0
	}
}

// RecordSuccess clears the failure counter for name, so earlier failures
// never carry over into a later session.
func (g *Guard) RecordSuccess(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.failed, name)
}
