package api

import (
	"testing"

	"github.com/FairForge/urlsigner/internal/bucket"
	"github.com/FairForge/urlsigner/internal/config"
	"github.com/FairForge/urlsigner/internal/drivers"
	"go.uber.org/zap"
)

// newTestServer builds a server on a MockDriver with the demo route enabled
// and rate limiting off. mutate may adjust the config before wiring.
func newTestServer(t *testing.T, mutate func(*config.Config), objects ...string) (*Server, *drivers.MockDriver) {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.PrimaryBucket = "primary"
	cfg.Server.EnableDemoRoute = true
	cfg.RateLimit.RequestsPerSecond = 0
	if mutate != nil {
		mutate(cfg)
	}

	mock := drivers.NewMockDriver(objects...)
	b := bucket.New(cfg.Storage.PrimaryBucket, mock, zap.NewNop())
	return NewServer(cfg, zap.NewNop(), b), mock
}
