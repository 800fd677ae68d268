package store

import (
	"context"
	"time"
)

const codeKeyPrefix = "rollcall:code:"

// CodeRegistry reserves attendance codes for the window in which they are
// redeemable, so that no two concurrently active sessions can share a code.
// Keys expire together with the code, after which the code may be reused.
type CodeRegistry struct {
	redis *Redis
}

// NewCodeRegistry creates a registry backed by the shared redis client.
func NewCodeRegistry(r *Redis) *CodeRegistry {
	return &CodeRegistry{redis: r}
}

// Reserve claims a code until ttl elapses. It returns false when the code is
// already held by another active session.
func (c *CodeRegistry) Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return c.redis.Client.SetNX(ctx, codeKeyPrefix+code, 1, ttl).Result()
}

// Release frees a reservation early. Used when session creation fails after
// the code was claimed.
func (c *CodeRegistry) Release(ctx context.Context, code string) error {
	return c.redis.Client.Del(ctx, codeKeyPrefix+code).Err()
}
