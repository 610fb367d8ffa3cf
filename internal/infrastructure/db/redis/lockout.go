package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = 15 * time.Minute
)

// LoginLockout counts failed login attempts per usuario in Redis.
// Key format: lockout:<usuario>, expiring after the window so a locked
// usuario frees itself without any cleanup job.
type LoginLockout struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLockout creates a LoginLockout wrapping the given Redis client.
// Non-positive tunables fall back to the defaults.
func NewLoginLockout(client *redis.Client, maxAttempts int, window time.Duration) *LoginLockout {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLockout{client: client, maxAttempts: maxAttempts, window: window}
}

// TooManyFailures reports whether the usuario has reached the attempt limit
// inside the current window.
func (l *LoginLockout) TooManyFailures(ctx context.Context, usuario string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(usuario)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the usuario's counter; the first failure of a
// window starts the expiry clock.
func (l *LoginLockout) RecordFailure(ctx context.Context, usuario string) error {
	key := l.key(usuario)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("lockout incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("lockout expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLockout) Reset(ctx context.Context, usuario string) error {
	return l.client.Del(ctx, l.key(usuario)).Err()
}

func (l *LoginLockout) key(usuario string) string {
	return fmt.Sprintf("lockout:%s", usuario)
}
