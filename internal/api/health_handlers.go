// internal/api/health_handlers.go
package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/FairForge/urlsigner/internal/config"
)

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"uptime":  time.Since(s.startTime).Seconds(),
	})
}

// handleReady reports whether signing can work at all. The default bucket
// name means nothing was configured and every signature would be refused.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ready := s.bucket.Name() != config.UnconfiguredBucket

	resp := map[string]interface{}{
		"ready":     ready,
		"backend":   s.bucket.Backend(),
		"bucket":    s.bucket.Name(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if !ready {
		resp["reason"] = "primary bucket not configured"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": Version,
		"go":      runtime.Version(),
	})
}
