// Package middleware holds the HTTP middleware of the catalog service.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// Limiter decides whether one more request from key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Limit() int
	Window() time.Duration
}

// NewLimiter uses Redis when store is available, else process memory.
func NewLimiter(store *cache.Store, max int, window time.Duration) Limiter {
	if store.Available() {
		return &RedisLimiter{store: store, max: max, window: window}
	}
	return NewMemoryLimiter(max, window)
}

// RedisLimiter counts requests per fixed window, shared by every replica.
type RedisLimiter struct {
	store  *cache.Store
	max    int
	window time.Duration
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := time.Now().UnixNano() / int64(l.window)
	n, err := l.store.Incr(ctx, fmt.Sprintf("ratelimit:%s:%d", key, slot), l.window)
	if err != nil {
		return true, err
	}
	return n <= int64(l.max), nil
}

func (l *RedisLimiter) Limit() int            { return l.max }
func (l *RedisLimiter) Window() time.Duration { return l.window }

// bucket tracks a fixed-window request count for one key.
type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps windows in a map. Expired buckets are swept at most
// once per window, on the request path.
type MemoryLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	buckets   map[string]*bucket
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++
	return b.count <= l.max, nil
}

func (l *MemoryLimiter) Limit() int            { return l.max }
func (l *MemoryLimiter) Window() time.Duration { return l.window }

// RateLimit answers 429 once a client IP exceeds the limiter's budget.
// Limiter errors let the request through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(l.Limit())
	retryAfter := strconv.Itoa(int(l.Window().Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", limit)

			ok, err := l.Allow(r.Context(), ctx.ClientIP(r))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable", "error", err)
			}
			if !ok {
				w.Header().Set("Retry-After", retryAfter)
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
