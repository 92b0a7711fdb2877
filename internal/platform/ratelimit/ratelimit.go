// Package ratelimit provides a fixed-window request limiter for the auth
// endpoints.
package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key in fixed windows. With a Redis client the
// window is shared across instances; without one it falls back to an
// in-process counter. Redis failures fail open: a broken cache must not take
// login down with it.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string

	mu      sync.Mutex
	counts  map[string]int
	resetAt map[string]time.Time
	// now is swapped in tests to control window boundaries.
	now func() time.Time
}

// NewLimiter creates a Limiter allowing limit requests per window for each
// key. rdb may be nil.
func NewLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Limiter{
		rdb:     rdb,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		counts:  make(map[string]int),
		resetAt: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether another request for key fits in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.rdb != nil {
		return l.allowRedis(ctx, key)
	}
	return l.allowLocal(key)
}

// allowRedis counts via INCR with an expiry on the first hit of a window.
func (l *Limiter) allowRedis(ctx context.Context, key string) bool {
	redisKey := l.prefix + ":" + key

	n, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("rate limit counter unavailable", "error", err)
		return true
	}
	if n == 1 {
		_ = l.rdb.Expire(ctx, redisKey, l.window).Err()
	}
	return n <= int64(l.limit)
}

// allowLocal counts in process memory, resetting each window.
func (l *Limiter) allowLocal(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if reset, ok := l.resetAt[key]; !ok || now.After(reset) {
		l.counts[key] = 0
		l.resetAt[key] = now.Add(l.window)
	}

	l.counts[key]++
	return l.counts[key] <= l.limit
}

// Middleware returns a Gin middleware keyed by client IP. Requests over the
// limit get 429.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), c.ClientIP()) {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
