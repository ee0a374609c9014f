package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultSignInMaxAttempts = 5
	DefaultSignInLockout     = 15 * time.Minute
)

// reserveScript counts an attempt and arms the window in one step. A key
// left without a TTL is re-armed so it can never lock an email forever.
const reserveScript = `
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`

var reserveLua = redis.NewScript(reserveScript)

// RedisSignInThrottle counts sign-in attempts per email in Redis. The counter
// expires Lockout after the first attempt, so a locked email frees itself.
type RedisSignInThrottle struct {
	client      redis.UniversalClient
	maxAttempts int
	lockout     time.Duration
}

func NewRedisSignInThrottle(client redis.UniversalClient, maxAttempts int, lockout time.Duration) *RedisSignInThrottle {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSignInMaxAttempts
	}
	if lockout <= 0 {
		lockout = DefaultSignInLockout
	}
	return &RedisSignInThrottle{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

func throttleKey(email string) string {
	return "signin:fail:" + email
}

// Reserve counts an attempt for email before any password work happens and
// reports whether it is still within the limit. Concurrent callers each get
// their own count, so at most maxAttempts of them are let through per window.
func (t *RedisSignInThrottle) Reserve(ctx context.Context, email string) (bool, error) {
	n, err := reserveLua.Run(ctx, t.client, []string{throttleKey(email)}, t.lockout.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("throttle reserve: %w", err)
	}
	return n <= int64(t.maxAttempts), nil
}

// Reset clears the counter after a successful sign-in.
func (t *RedisSignInThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, throttleKey(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

// Ping checks the Redis connection, for readiness.
func (t *RedisSignInThrottle) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}
