package api

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
)

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	s.router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.router.HandleFunc("/read-object", s.handleReadObject).Methods(http.MethodPost)
	s.router.HandleFunc("/write-object", s.handleWriteObject).Methods(http.MethodPost)
	s.router.HandleFunc("/delete-object", s.handleDeleteObject).Methods(http.MethodPost)

	if s.config.Server.EnableDemoRoute {
		s.router.HandleFunc("/", s.handleDemo).Methods(http.MethodGet)
	}
	s.router.HandleFunc("/{id}/{filename}", s.handleSignVideo).Methods(http.MethodGet)

	s.router.Use(requestIDMiddleware)
	s.router.Use(chimw.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(chimw.Recoverer)
	s.router.Use(mux.MiddlewareFunc(RateLimitMiddleware(s.limiter, s.metrics)))
}
