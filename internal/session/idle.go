package session

import "time"

// Activity is the result of an idle-policy check.
type Activity int

const (
	Active Activity = iota
	ShouldLock
)

// IdlePolicy decides when an inactive session must be ended. It is a pure
// policy: the front end records activity timestamps and acts on ShouldLock
// by persisting the balance and clearing the logged-in user.
type IdlePolicy struct {
	Window time.Duration
}

// Check compares the time since the last observed input event against the
// configured window.
func (p IdlePolicy) Check(lastActivity, now time.Time) Activity {
	if p.Window <= 0 {
		return Active
	}
	if now.Sub(lastActivity) >= p.Window {
		return ShouldLock
	}
	return Active
}
