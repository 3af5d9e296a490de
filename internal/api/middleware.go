package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/FairForge/urlsigner/internal/logging"
	"github.com/FairForge/urlsigner/internal/model"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Middleware is a function that wraps an HTTP handler
type Middleware func(http.Handler) http.Handler

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware reuses the caller's X-Request-ID or generates one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware logs every request and records its metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routeTemplate(r)
		latency := time.Since(start)

		s.metrics.IncrementRequest(r.Method, route, status)
		s.metrics.RecordLatency(r.Method, route, latency.Seconds())

		logging.FromContext(r.Context(), s.logger).Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", latency),
		)
	})
}

// routeTemplate keeps metric labels bounded: /{id}/{filename} instead of the raw path
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// Probes and scrapes are never rate limited.
var rateLimitExempt = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/version": true,
	"/metrics": true,
}

// RateLimitMiddleware creates middleware that enforces per-client rate
// limits. A nil limiter disables limiting.
func RateLimitMiddleware(limiter *RateLimiter, metrics *Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rateLimitExempt[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			client := clientKey(r)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Burst()))

			if !limiter.Allow(client) {
				if metrics != nil {
					metrics.IncrementRateLimitHit()
				}
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, model.CodeRateLimited, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the remote IP without port. chi's RealIP has already applied
// X-Real-IP / X-Forwarded-For at this point.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
