package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements importer.Locker on Redis SET NX. The TTL bounds
// how long a crashed import can keep its owner locked out.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker creates a new RedisLocker
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "lock:",
	}
}

// Acquire takes the named lock for at most ttl
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+name, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", name, err)
	}
	return ok, nil
}

// Release frees the named lock
func (l *RedisLocker) Release(ctx context.Context, name string) error {
	if err := l.client.Del(ctx, l.prefix+name).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", name, err)
	}
	return nil
}

// MemoryLocker is an in-process Locker for tests and single-node setups
type MemoryLocker struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryLocker creates a new MemoryLocker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{expires: make(map[string]time.Time)}
}

// Acquire takes the named lock for at most ttl
func (l *MemoryLocker) Acquire(_ context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if deadline, held := l.expires[name]; held && time.Now().Before(deadline) {
		return false, nil
	}
	l.expires[name] = time.Now().Add(ttl)
	return true, nil
}

// Release frees the named lock
func (l *MemoryLocker) Release(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.expires, name)
	return nil
}
