package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidName rejects names that are not plain personal names.
	ErrInvalidName = errors.New("name must start with a letter and contain only letters, spaces, hyphens or apostrophes")

	// ErrInvalidPIN rejects anything but exactly four digits.
	ErrInvalidPIN = errors.New("PIN must be exactly 4 digits")

	// ErrAlreadyExists signals a duplicate registration for a normalized name.
	ErrAlreadyExists = errors.New("account already exists")

	// ErrNotFound signals login against an unknown account.
	ErrNotFound = errors.New("account not found")

	// ErrWrongPIN signals a failed PIN check for an existing account.
	// Front ends may surface this identically to ErrNotFound.
	ErrWrongPIN = errors.New("invalid PIN")
)

// LockedOutError is returned while an account is inside its lockout window.
type LockedOutError struct {
	Until time.Time
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed attempts, locked until %s", e.Until.Format("15:04:05"))
}

// Remaining estimates the time left in the lockout window at now.
func (e *LockedOutError) Remaining(now time.Time) time.Duration {
	if d := e.Until.Sub(now); d > 0 {
		return d
	}
	return 0
}
