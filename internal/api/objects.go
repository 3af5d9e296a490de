package api

import (
	"net/http"

	"github.com/FairForge/urlsigner/internal/model"
)

// handleReadObject signs a GET URL for an existing object
func (s *Server) handleReadObject(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeObjectRequest(w, r)
	if !ok {
		return
	}

	exists, err := s.bucket.Exists(r.Context(), req.Object)
	if err != nil {
		s.writeBucketError(w, r, err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, model.CodeNotFound, "object not found")
		return
	}

	res, err := s.bucket.GenerateSignedURL(r.Context(), req.Object, http.MethodGet, "")
	s.metrics.ObserveSigning(s.bucket.Backend(), http.MethodGet, err)
	if err != nil {
		s.writeBucketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleWriteObject signs a PUT URL so the client can upload the object
func (s *Server) handleWriteObject(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeObjectRequest(w, r)
	if !ok {
		return
	}

	res, err := s.bucket.GenerateWriteSignedURL(r.Context(), req.Object, req.ContentType)
	s.metrics.ObserveSigning(s.bucket.Backend(), http.MethodPut, err)
	if err != nil {
		s.writeBucketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeObjectRequest(w, r)
	if !ok {
		return
	}

	if err := s.bucket.Delete(r.Context(), req.Object); err != nil {
		s.writeBucketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DeleteResponse{Deleted: req.Object})
}
