package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendGCS  = "gcs"
	BackendS3   = "s3"
	BackendMock = "mock"
)

// UnconfiguredBucket is the bucket name used when GCP_PRIMARY_BUCKET_NAME is
// unset. Requests against it are rejected by the store.
const UnconfiguredBucket = "invalid"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	EnableDemoRoute bool          `yaml:"enable_demo_route" env:"ENABLE_DEMO_ROUTE"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type StorageConfig struct {
	Backend       string    `yaml:"backend" env:"STORAGE_BACKEND"`
	PrimaryBucket string    `yaml:"primary_bucket" env:"GCP_PRIMARY_BUCKET_NAME"`
	GCS           GCSConfig `yaml:"gcs"`
	S3            S3Config  `yaml:"s3"`
}

// GCSConfig optionally pins the V4 signer. Both fields empty means the
// signer comes from the ambient Google credentials.
type GCSConfig struct {
	SignerEmail    string `yaml:"signer_email" env:"GCS_SIGNER_EMAIL"`
	PrivateKeyFile string `yaml:"private_key_file" env:"GCS_PRIVATE_KEY_FILE"`
}

type S3Config struct {
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region       string `yaml:"region" env:"S3_REGION"`
	AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	UsePathStyle bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// RateLimitConfig limits requests per client IP. Zero RequestsPerSecond disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:       BackendGCS,
			PrimaryBucket: UnconfiguredBucket,
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// Validate checks configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: invalid port %d", c.Server.Port))
	}
	if c.Storage.PrimaryBucket == "" {
		errs = append(errs, errors.New("config: primary bucket name is empty"))
	}

	switch c.Storage.Backend {
	case BackendGCS:
		if (c.Storage.GCS.SignerEmail == "") != (c.Storage.GCS.PrivateKeyFile == "") {
			errs = append(errs, errors.New("config: GCS_SIGNER_EMAIL and GCS_PRIVATE_KEY_FILE must be set together"))
		}
	case BackendS3:
		if c.Storage.S3.Region == "" {
			errs = append(errs, errors.New("config: S3_REGION is required for the s3 backend"))
		}
		if (c.Storage.S3.AccessKey == "") != (c.Storage.S3.SecretKey == "") {
			errs = append(errs, errors.New("config: S3_ACCESS_KEY and S3_SECRET_KEY must be set together"))
		}
	case BackendMock:
	default:
		errs = append(errs, fmt.Errorf("config: invalid storage backend %q", c.Storage.Backend))
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("config: invalid log format %q", c.Log.Format))
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("config: rate limit values must not be negative"))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
