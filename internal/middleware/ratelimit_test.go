package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	h := NewRateLimiter("contact", store, 2, time.Minute).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5001").Code, "port must not split the counter")

	rr := hit(h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:5000").Code, "other clients are unaffected")
}

func TestRateLimiter_WindowResets(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	h := NewRateLimiter("contact", store, 1, 20*time.Millisecond).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.3:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.3:1").Code)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.3:1").Code)
}

func TestRateLimiter_SteadyClientUnderLimitIsNeverBlocked(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	h := NewRateLimiter("chat", store, 2, 100*time.Millisecond).Middleware(okHandler)

	for i := 0; i < 6; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.7:1").Code, "request %d", i)
		time.Sleep(60 * time.Millisecond)
	}
}

func TestMemoryStore_WindowIsNotExtendedByHits(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	ctx := context.Background()
	window := 100 * time.Millisecond

	n, _ := store.Hit(ctx, "k", window)
	assert.Equal(t, 1, n)
	time.Sleep(60 * time.Millisecond)
	n, _ = store.Hit(ctx, "k", window)
	assert.Equal(t, 2, n)

	time.Sleep(60 * time.Millisecond)
	n, err := store.Hit(ctx, "k", window)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "window opened by the first hit has expired")
}

func TestRateLimiter_NamesKeepSeparateCounters(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	chat := NewRateLimiter("chat", store, 1, time.Minute).Middleware(okHandler)
	contact := NewRateLimiter("contact", store, 1, time.Minute).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(chat, "10.0.0.6:1").Code)
	assert.Equal(t, http.StatusOK, hit(contact, "10.0.0.6:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(chat, "10.0.0.6:1").Code)
}

func TestRateLimiter_ZeroLimitDisables(t *testing.T) {
	h := NewRateLimiter("contact", failingStore{}, 0, time.Minute).Middleware(okHandler)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.4:1").Code)
	}
}

type failingStore struct{}

func (failingStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	return 0, errors.New("redis: connection refused")
}

func TestRateLimiter_StoreErrorFailsOpen(t *testing.T) {
	h := NewRateLimiter("contact", failingStore{}, 1, time.Minute).Middleware(okHandler)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.5:1").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.5:1").Code)
}

func TestRedisStore_Hit(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	store := NewRedisStore(client, "test:ratelimit")
	key := uuid.NewString()

	n, err := store.Hit(context.Background(), key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Hit(context.Background(), key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ttl, err := client.TTL(context.Background(), "test:ratelimit:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
