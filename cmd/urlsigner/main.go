// cmd/urlsigner/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/storage"
	"github.com/FairForge/urlsigner/internal/api"
	"github.com/FairForge/urlsigner/internal/bucket"
	"github.com/FairForge/urlsigner/internal/config"
	"github.com/FairForge/urlsigner/internal/drivers"
	"github.com/FairForge/urlsigner/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "urlsigner: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "urlsigner: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	driver, err := newDriver(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create storage driver",
			zap.String("backend", cfg.Storage.Backend),
			zap.Error(err))
	}
	defer func() { _ = driver.Close() }()

	if cfg.Storage.PrimaryBucket == config.UnconfiguredBucket {
		logger.Warn("GCP_PRIMARY_BUCKET_NAME is not set, signed URLs will be refused by the store",
			zap.String("bucket", config.UnconfiguredBucket))
	}

	b := bucket.New(cfg.Storage.PrimaryBucket, driver, logger)
	server := api.NewServer(cfg, logger, b)

	// Handle shutdown gracefully
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
	<-done
	logger.Info("server stopped")
}

// newDriver builds the signing driver for the configured backend. The GCS
// backend without an explicit key needs ambient credentials, so their absence
// is reported here rather than on the first request.
func newDriver(ctx context.Context, cfg *config.Config, logger *zap.Logger) (drivers.Driver, error) {
	switch cfg.Storage.Backend {
	case config.BackendGCS:
		key, err := cfg.Storage.GCS.ReadPrivateKey()
		if err != nil {
			return nil, err
		}
		if key == nil {
			if _, err := google.FindDefaultCredentials(ctx, storage.ScopeReadWrite); err != nil {
				return nil, fmt.Errorf("google application default credentials: %w", err)
			}
		}
		logger.Info("using gcs storage",
			zap.String("bucket", cfg.Storage.PrimaryBucket),
			zap.Bool("explicit_signer", key != nil))
		return drivers.NewGCSDriver(ctx, drivers.GCSConfig{
			SignerEmail: cfg.Storage.GCS.SignerEmail,
			PrivateKey:  key,
		}, logger)

	case config.BackendS3:
		logger.Info("using s3-compatible storage",
			zap.String("bucket", cfg.Storage.PrimaryBucket),
			zap.String("endpoint", cfg.Storage.S3.Endpoint))
		return drivers.NewS3Driver(ctx, drivers.S3Config{
			Endpoint:     cfg.Storage.S3.Endpoint,
			Region:       cfg.Storage.S3.Region,
			AccessKey:    cfg.Storage.S3.AccessKey,
			SecretKey:    cfg.Storage.S3.SecretKey,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
		}, logger)

	case config.BackendMock:
		logger.Warn("using mock storage, URLs are not signed",
			zap.String("bucket", cfg.Storage.PrimaryBucket))
		return drivers.NewMockDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
