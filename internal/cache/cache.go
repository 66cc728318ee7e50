package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keshav84652/workflow-management/internal/config"
)

// New builds the shared Redis client used for dashboard caching and the
// portal login rate limit.
func New(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// LoginLimiter is a fixed-window counter keyed by portal access code.
type LoginLimiter struct {
	rdb      *redis.Client
	attempts int
	window   time.Duration
}

func NewLoginLimiter(rdb *redis.Client, attempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, attempts: attempts, window: window}
}

// Allow records an attempt for code and reports whether it is still within
// the window cap. Redis being down fails open: a broken limiter must not
// lock clients out of the portal.
func (l *LoginLimiter) Allow(ctx context.Context, code string) bool {
	key := fmt.Sprintf("portal:login:%s", code)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return n <= int64(l.attempts)
}

// Reset clears the window for a code after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, code string) {
	l.rdb.Del(ctx, fmt.Sprintf("portal:login:%s", code))
}
