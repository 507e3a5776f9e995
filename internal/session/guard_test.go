package session

import (
	"testing"
	"time"
)

func TestGuardLocksAfterThreshold(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	g := NewGuard(5, 5*time.Minute)

	for i := 0; i < 4; i++ {
		g.RecordFailure("Jane Doe", now)
		if locked, _ := g.CheckLocked("Jane Doe", now); locked {
			t.Fatalf("locked after %d failures, want threshold 5", i+1)
		}
	}

	g.RecordFailure("Jane Doe", now)
	locked, until := g.CheckLocked("Jane Doe", now)
	if !locked {
		t.Fatal("expected lockout after 5 failures")
	}
	if want := now.Add(5 * time.Minute); !until.Equal(want) {
		t.Fatalf("lockedUntil=%v want=%v", until, want)
	}
}

func TestGuardLockExpires(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	g := NewGuard(5, 5*time.Minute)
	for i := 0; i < 5; i++ {
		g.RecordFailure("Jane Doe", now)
	}

	if locked, _ := g.CheckLocked("Jane Doe", now.Add(4*time.Minute)); !locked {
		t.Fatal("expected lockout inside window")
	}
	if locked, _ := g.CheckLocked("Jane Doe", now.Add(5*time.Minute)); locked {
		t.Fatal("expected lockout to expire at window end")
	}

	// Counter restarted at zero when the lock armed.
	later := now.Add(6 * time.Minute)
	g.RecordFailure("Jane Doe", later)
	if locked, _ := g.CheckLocked("Jane Doe", later); locked {
		t.Fatal("single failure after expiry should not re-lock")
	}
}

func TestGuardSuccessClearsCounter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	g := NewGuard(5, 5*time.Minute)

	for i := 0; i < 4; i++ {
		g.RecordFailure("Jane Doe", now)
	}
	g.RecordSuccess("Jane Doe")

	// Four more failures would have locked without the reset.
	for i := 0; i < 4; i++ {
		g.RecordFailure("Jane Doe", now)
	}
	if locked, _ := g.CheckLocked("Jane Doe", now); locked {
		t.Fatal("counter should have been cleared on success")
	}
}

func TestGuardTracksNamesIndependently(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	g := NewGuard(5, 5*time.Minute)

	for i := 0; i < 5; i++ {
		g.RecordFailure("Jane Doe", now)
	}
	if locked, _ := g.CheckLocked("John Smith", now); locked {
		t.Fatal("lockout must be per name")
	}
}

func TestIdlePolicy(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	p := IdlePolicy{Window: 3 * time.Minute}

	tests := []struct {
		name         string
		lastActivity time.Time
		want         Activity
	}{
		{"fresh activity", now.Add(-time.Second), Active},
		{"just under window", now.Add(-3*time.Minute + time.Second), Active},
		{"at window", now.Add(-3 * time.Minute), ShouldLock},
		{"long idle", now.Add(-time.Hour), ShouldLock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Check(tt.lastActivity, now); got != tt.want {
				t.Fatalf("Check=%v want=%v", got, tt.want)
			}
		})
	}

	if got := (IdlePolicy{}).Check(now.Add(-time.Hour), now); got != Active {
		t.Fatalf("zero window must disable idle lock, got %v", got)
	}
}
