package api

import (
	"context"
	"net/http"
	"time"

	"github.com/FairForge/urlsigner/internal/bucket"
	"github.com/FairForge/urlsigner/internal/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Version is reported by /health and /version
const Version = "0.1.0"

type Server struct {
	config     *config.Config
	logger     *zap.Logger
	router     *mux.Router
	httpServer *http.Server
	bucket     *bucket.Bucket
	metrics    *Metrics
	limiter    *RateLimiter

	startTime time.Time
}

// NewServer wires the routes for b. b is shared by all requests.
func NewServer(cfg *config.Config, logger *zap.Logger, b *bucket.Bucket) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		router:    newRouter(),
		bucket:    b,
		metrics:   NewMetrics(),
		startTime: time.Now(),
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// newRouter matches on the escaped path and never cleans it, so ids and file
// names reach the handlers exactly as the client sent them.
func newRouter() *mux.Router {
	return mux.NewRouter().SkipClean(true).UseEncodedPath()
}

func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.Int("port", s.config.Server.Port),
		zap.String("bucket", s.bucket.Name()),
		zap.String("backend", s.bucket.Backend()))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
