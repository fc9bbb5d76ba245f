package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateStore counts hits for a key within a fixed window and reports the
// count including the current hit.
type RateStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

type visitor struct {
	count       int
	windowStart time.Time
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	s := &MemoryStore{
		visitors: make(map[string]*visitor),
		window:   window,
		stop:     make(chan struct{}),
	}

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				for key, v := range s.visitors {
					if time.Since(v.windowStart) > s.window {
						delete(s.visitors, key)
					}
				}
				s.mu.Unlock()
			}
		}
	}()

	return s
}

func (s *MemoryStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The window opens on the first hit and is not extended by later ones
	v, exists := s.visitors[key]
	if !exists || time.Since(v.windowStart) >= window {
		s.visitors[key] = &visitor{count: 1, windowStart: time.Now()}
		return 1, nil
	}

	v.count++
	return v.count, nil
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// RedisStore shares counters between instances through Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	redisKey := fmt.Sprintf("%s:%s", s.prefix, key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit counter: %w", err)
	}
	return int(incr.Val()), nil
}

// RateLimiter allows limit requests per client IP per window. Limiters with
// different names keep separate counters in a shared store.
type RateLimiter struct {
	name   string
	store  RateStore
	limit  int
	window time.Duration
}

func NewRateLimiter(name string, store RateStore, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		name:   name,
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		count, err := rl.store.Hit(r.Context(), rl.name+":"+clientIP(r), rl.window)
		if err != nil {
			// Fail open on store errors
			log.Printf("⚠ Rate limiter store error: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port that RemoteAddr carries unless RealIP replaced it.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
