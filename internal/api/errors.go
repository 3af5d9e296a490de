package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FairForge/urlsigner/internal/bucket"
	"github.com/FairForge/urlsigner/internal/logging"
	"github.com/FairForge/urlsigner/internal/model"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeBucketError maps bucket errors to a status and a JSON body. The
// underlying SDK error is logged, never sent to the client.
func (s *Server) writeBucketError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context(), s.logger)

	var notFound bucket.NotFoundError
	var signErr *bucket.SigningError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, model.CodeNotFound, "object not found")
	case errors.Is(err, context.Canceled):
		logger.Info("request cancelled", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, model.CodeInternalError, "request cancelled")
	case errors.As(err, &signErr):
		logger.Error("signing failed",
			zap.String("bucket", signErr.Bucket),
			zap.String("object", signErr.Object),
			zap.Error(signErr.Err))
		writeError(w, http.StatusInternalServerError, model.CodeSigningFailed, "could not generate signed url")
	default:
		logger.Error("storage request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternalError, "internal error")
	}
}
