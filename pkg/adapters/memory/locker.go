package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/ports"
)

// Locker implements ports.RunLocker within a single process.
type Locker struct {
	mu    sync.Mutex
	held  map[string]lease
	token uint64
}

type lease struct {
	token   uint64
	expires time.Time // zero means no expiry
}

var _ ports.RunLocker = (*Locker)(nil)

// NewLocker creates a new in-memory locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]lease)}
}

// Acquire takes the lock for key or returns domain.ErrLockHeld.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if cur, ok := l.held[key]; ok && (cur.expires.IsZero() || now.Before(cur.expires)) {
		return nil, domain.ErrLockHeld
	}

	l.token++
	ls := lease{token: l.token}
	if ttl > 0 {
		ls.expires = now.Add(ttl)
	}
	l.held[key] = ls

	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// Only release our own lease; an expired one may have been re-acquired.
		if cur, ok := l.held[key]; ok && cur.token == ls.token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
