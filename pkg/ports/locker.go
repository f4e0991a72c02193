package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// RunLocker guards a map build so two processes never dispatch the same
// candidate's queue at once.
type RunLocker interface {
	// Acquire takes the lock for key without blocking.
	// It returns domain.ErrLockHeld if another holder owns it.
	// The lock expires after ttl even if never released (zero means no expiry).
	// Returns an UnlockFunc that MUST be called to release the lock.
	Acquire(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
