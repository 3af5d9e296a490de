package api

import (
	"io"
	"net/http"
	"net/url"

	"github.com/FairForge/urlsigner/internal/model"
	"github.com/gorilla/mux"
	"github.com/munnerz/goautoneg"
)

// handleDemo signs a fixed demo video. Only routed with ENABLE_DEMO_ROUTE.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	s.respondReadURL(w, r, model.SignRequest{
		FileName: model.DemoFileName,
		ID:       model.DemoID,
	})
}

// handleSignVideo handles GET /{id}/{filename}. The router matches the
// escaped path, so each segment is unescaped here: %2F becomes part of the
// segment instead of splitting it.
func (s *Server) handleSignVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := url.PathUnescape(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidationError, "invalid id segment")
		return
	}
	fileName, err := url.PathUnescape(vars["filename"])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidationError, "invalid filename segment")
		return
	}

	s.respondReadURL(w, r, model.SignRequest{
		FileName: fileName,
		ID:       id,
	})
}

// respondReadURL writes the signed URL as the raw body, or as JSON when the
// client asks for it.
func (s *Server) respondReadURL(w http.ResponseWriter, r *http.Request, req model.SignRequest) {
	res, err := s.bucket.GenerateReadSignedURL(r.Context(), req)
	s.metrics.ObserveSigning(s.bucket.Backend(), http.MethodGet, err)
	if err != nil {
		s.writeBucketError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, res)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.URL)
}

// wantsJSON negotiates Accept between the raw URL and JSON. Media ranges with
// q=0 are refused; equal weights go to the range listed first.
func wantsJSON(r *http.Request) bool {
	for _, clause := range goautoneg.ParseAccept(r.Header.Get("Accept")) {
		if clause.Q <= 0 {
			continue
		}
		switch {
		case clause.Type == "application" && clause.SubType == "json":
			return true
		case clause.Type == "text" && (clause.SubType == "plain" || clause.SubType == "*"),
			clause.Type == "*":
			return false
		}
	}
	return false
}
