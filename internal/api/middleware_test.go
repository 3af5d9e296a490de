package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FairForge/urlsigner/internal/config"
	"github.com/FairForge/urlsigner/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(10, 10)
	called := false
	handler := RateLimitMiddleware(limiter, NewMetrics())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/abc/def.mp4", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called, "handler should have been called")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimitMiddleware_Returns429WhenLimited(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	metrics := NewMetrics()
	handler := RateLimitMiddleware(limiter, metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/abc/def.mp4", nil)
	req.RemoteAddr = "192.0.2.10:4321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimitMiddleware_ExemptsProbes(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitMiddleware_NilLimiterPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RateLimitMiddleware(nil, nil)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/a/b", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RateLimitsSigning(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.RateLimit.RequestsPerSecond = 1
		c.RateLimit.Burst = 1
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/abc/def.mp4", nil)
		req.Header.Set("X-Real-IP", "198.51.100.7")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(requestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "caller-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "caller-id", seen)
		assert.Equal(t, "caller-id", rec.Header().Get(requestIDHeader))
	})
}

func TestLoggingMiddleware_LogsRouteAndStatus(t *testing.T) {
	s, _ := newTestServer(t, nil)
	core, logs := observer.New(zapcore.InfoLevel)
	s.logger = zap.New(core)

	req := httptest.NewRequest(http.MethodGet, "/abc/def.mp4", nil)
	req.Header.Set(requestIDHeader, "req-42")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/{id}/{filename}", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-42", fields["request_id"])
}

func TestRecoverer_ReturnsServerError(t *testing.T) {
	s, _ := newTestServer(t, nil)
	s.router.HandleFunc("/explode", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/explode", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.5:8080"
	assert.Equal(t, "203.0.113.5", clientKey(req))

	req.RemoteAddr = "203.0.113.5"
	assert.Equal(t, "203.0.113.5", clientKey(req))
}
