package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// unlockScript deletes the key only if it still holds our token.
var unlockScript = backend.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker implements ports.RunLocker using Redis so runs on different hosts exclude each other.
type Locker struct {
	client *backend.Client
	prefix string
}

var _ ports.RunLocker = (*Locker)(nil)

type Option func(*Locker)

// WithPrefix sets the key prefix for locks.
func WithPrefix(prefix string) Option {
	return func(l *Locker) {
		l.prefix = prefix
	}
}

// New creates a Redis locker connected to address.
func New(address, password string, db int, opts ...Option) *Locker {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis locker from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Locker {
	l := &Locker{
		client: client,
		prefix: "megaverse:",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire takes the lock with SET NX PX. It does not wait for a held lock.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}

	return func(ctx context.Context) error {
		return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
	}, nil
}

// Close closes the redis client.
func (l *Locker) Close() error {
	return l.client.Close()
}
