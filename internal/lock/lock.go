// Package lock provides short-lived named locks that serialize work on a
// single record, such as projecting one paycheck.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when another holder owns the lock.
var ErrNotObtained = errors.New("lock: not obtained")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out locks by key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// RedisLocker shares locks between API replicas through Redis.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker wraps a connected redis client.
func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Connect dials addr and pings it before returning a Redis-backed locker.
func Connect(ctx context.Context, addr string) (*RedisLocker, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return NewRedisLocker(rdb), rdb, nil
}

// Obtain tries once to take the lock.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	held, err := l.client.Obtain(ctx, "lock:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return held, nil
}

// LocalLocker serializes within one process. Used when no Redis address is
// configured and in tests.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

// NewLocalLocker returns an empty in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time), now: time.Now}
}

// Obtain takes the lock unless an unexpired holder has it.
func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return nil, ErrNotObtained
	}
	expires := now.Add(ttl)
	l.held[key] = expires
	return &localLock{owner: l, key: key, expires: expires}, nil
}

type localLock struct {
	owner   *LocalLocker
	key     string
	expires time.Time
}

func (h *localLock) Release(context.Context) error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.owner.held[h.key] == h.expires {
		delete(h.owner.held, h.key)
	}
	return nil
}
