// Package bucket holds the reference to the primary storage bucket and the
// URL signing operations built on top of it.
package bucket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FairForge/urlsigner/internal/drivers"
	"github.com/FairForge/urlsigner/internal/model"
	"go.uber.org/zap"
)

// Bucket is an immutable handle on a named bucket. It is safe for concurrent use.
type Bucket struct {
	name   string
	driver drivers.Driver
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Bucket at construction time
type Option func(*Bucket)

// WithTTL overrides how long signed URLs stay valid
func WithTTL(ttl time.Duration) Option {
	return func(b *Bucket) {
		b.ttl = ttl
	}
}

// WithClock overrides the time source used to compute expiry
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		b.now = now
	}
}

// New creates a bucket reference backed by driver
func New(name string, driver drivers.Driver, logger *zap.Logger, opts ...Option) *Bucket {
	b := &Bucket{
		name:   name,
		driver: driver,
		logger: logger,
		ttl:    model.SignedURLTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bucket) Name() string {
	return b.name
}

// Backend returns the name of the signing driver
func (b *Bucket) Backend() string {
	return b.driver.Name()
}

// ObjectPath builds the key of a video file: video/{id}/{fileName}.
// Segments are used verbatim.
func ObjectPath(id, fileName string) string {
	return model.VideoPrefix + "/" + id + "/" + fileName
}

// GenerateReadSignedURL signs a GET URL for video/{id}/{fileName}. The object
// is not required to exist.
func (b *Bucket) GenerateReadSignedURL(ctx context.Context, req model.SignRequest) (model.SignedURLResult, error) {
	return b.GenerateSignedURL(ctx, ObjectPath(req.ID, req.FileName), http.MethodGet, "")
}

// GenerateWriteSignedURL signs a PUT URL for object
func (b *Bucket) GenerateWriteSignedURL(ctx context.Context, object, contentType string) (model.SignedURLResult, error) {
	return b.GenerateSignedURL(ctx, object, http.MethodPut, contentType)
}

// GenerateSignedURL signs object for method. The URL stays valid for the
// bucket TTL; ExpiresAt is computed from the bucket clock.
func (b *Bucket) GenerateSignedURL(ctx context.Context, object, method, contentType string) (model.SignedURLResult, error) {
	if err := ctx.Err(); err != nil {
		return model.SignedURLResult{}, err
	}
	if b.ttl <= 0 {
		return model.SignedURLResult{}, &SigningError{Bucket: b.name, Object: object, Err: drivers.ErrExpired}
	}

	issued := b.now()
	u, err := b.driver.SignedURL(ctx, b.name, object, drivers.SignOptions{
		Method:      method,
		TTL:         b.ttl,
		ContentType: contentType,
	})
	if err != nil {
		return model.SignedURLResult{}, &SigningError{Bucket: b.name, Object: object, Err: err}
	}

	return model.SignedURLResult{
		URL:       u,
		Method:    method,
		ExpiresAt: issued.Add(b.ttl).UTC(),
	}, nil
}

// Exists reports whether object is stored in the bucket
func (b *Bucket) Exists(ctx context.Context, object string) (bool, error) {
	ok, err := b.driver.Exists(ctx, b.name, object)
	if err != nil {
		return false, fmt.Errorf("check %s/%s: %w", b.name, object, err)
	}
	return ok, nil
}

// Delete removes object. A missing object yields a NotFoundError.
func (b *Bucket) Delete(ctx context.Context, object string) error {
	err := b.driver.Delete(ctx, b.name, object)
	if errors.Is(err, drivers.ErrObjectNotFound) {
		return ErrNotFound(b.name, object)
	}
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", b.name, object, err)
	}

	b.logger.Info("deleted object",
		zap.String("bucket", b.name),
		zap.String("object", object))
	return nil
}
