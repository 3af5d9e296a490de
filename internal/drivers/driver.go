package drivers

import (
	"context"
	"errors"
	"time"
)

// Driver is the common interface all signing backends must implement
type Driver interface {
	Name() string
	SignedURL(ctx context.Context, bucket, object string, opts SignOptions) (string, error)
	Exists(ctx context.Context, bucket, object string) (bool, error)
	Delete(ctx context.Context, bucket, object string) error
	Close() error
}

// SignOptions describes the request a signed URL grants. TTL is counted
// from the moment the driver signs.
type SignOptions struct {
	Method      string
	TTL         time.Duration
	ContentType string
}

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrUnsupportedMethod = errors.New("unsupported signing method")
	ErrExpired           = errors.New("signed url lifetime must be positive")
)
