package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeAuth map[string]string

func (f fakeAuth) Authenticate(_ context.Context, token string) (string, bool, error) {
	id, ok := f[token]
	return id, ok, nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(UserID(r.Context())))
})

func request(method, path, remote string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	r.RemoteAddr = remote
	return r
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(fakeAuth{"tok": "u1"})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/ws/editor?token=tok", nil))
	assert.Equal(t, "u1", rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(fakeAuth{"tok": "u1"})(okHandler)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"https://Biography.example"})(okHandler)

	r := httptest.NewRequest("OPTIONS", "/api/profile", nil)
	r.Header.Set("Origin", "https://biography.example")
	r.Header.Set("Access-Control-Request-Method", "PATCH")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://biography.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest("GET", "/api/profile", nil)
	r.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimitOnlyOnCredentialRoutes(t *testing.T) {
	h := LoginRateLimit(okHandler)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("POST", "/api/auth/signin", "192.0.2.10:1000"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request("POST", "/api/auth/signin", "192.0.2.10:1000"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request("GET", "/api/profile", "192.0.2.10:1000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditorWriteRateLimitIsPerUser(t *testing.T) {
	h := EditorWriteRateLimit(okHandler)
	send := func(method, user string) int {
		r := request(method, "/api/editor/blocks", "192.0.2.20:1000")
		r = r.WithContext(WithUserID(r.Context(), user))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	for i := 0; i < editorWriteBurst; i++ {
		require.Equal(t, http.StatusOK, send("PATCH", "limit-a"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("PATCH", "limit-a"))
	assert.Equal(t, http.StatusOK, send("GET", "limit-a"))
	assert.Equal(t, http.StatusOK, send("PATCH", "limit-b"))
}

func TestLimiterSetSweepsIdleEntries(t *testing.T) {
	s := newLimiterSet(rate.Limit(1), 1)
	s.get("a")
	s.get("b")
	require.Equal(t, 2, s.size())

	s.sweep(time.Now().Add(limiterTTL + time.Minute))
	assert.Equal(t, 0, s.size())
}

func TestWindowLimiterBlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	l := NewWindowLimiter(client, "search")
	l.MaxRequests = 2
	h := l.Middleware(okHandler)
	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("POST", "/api/friends/search", "198.51.100.1:9"))
		return rec
	}

	rec := send()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusTooManyRequests, send().Code)
	assert.True(t, mr.Exists(BlockedIPKeyPrefix+"search:198.51.100.1"))

	mr.FastForward(l.BlockFor + l.Window)
	assert.Equal(t, http.StatusOK, send().Code)
}

func TestWindowLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	rec := httptest.NewRecorder()
	NewWindowLimiter(client, "search").Middleware(okHandler).ServeHTTP(rec, request("GET", "/", "198.51.100.2:9"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
