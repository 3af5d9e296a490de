package drivers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GCSConfig configures the Google Cloud Storage driver. SignerEmail and
// PrivateKey are optional: when empty the SDK derives the signer from the
// ambient credentials, falling back to the IAM signBlob API.
type GCSConfig struct {
	SignerEmail   string
	PrivateKey    []byte
	ClientOptions []option.ClientOption
}

// GCSDriver signs V4 URLs for objects stored in Google Cloud Storage
type GCSDriver struct {
	client      *storage.Client
	signerEmail string
	privateKey  []byte
	logger      *zap.Logger
}

// NewGCSDriver creates a storage client using the standard credential discovery
func NewGCSDriver(ctx context.Context, cfg GCSConfig, logger *zap.Logger) (*GCSDriver, error) {
	client, err := storage.NewClient(ctx, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &GCSDriver{
		client:      client,
		signerEmail: cfg.SignerEmail,
		privateKey:  cfg.PrivateKey,
		logger:      logger,
	}, nil
}

func (d *GCSDriver) Name() string {
	return "gcs"
}

// SignedURL returns a V4 signed URL for bucket/object
func (d *GCSDriver) SignedURL(ctx context.Context, bucket, object string, opts SignOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if opts.Method != http.MethodGet && opts.Method != http.MethodPut {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, opts.Method)
	}
	if opts.TTL <= 0 {
		return "", ErrExpired
	}

	signOpts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         opts.Method,
		Expires:        time.Now().Add(opts.TTL),
		ContentType:    opts.ContentType,
		GoogleAccessID: d.signerEmail,
		PrivateKey:     d.privateKey,
	}

	u, err := d.client.Bucket(bucket).SignedURL(object, signOpts)
	if err != nil {
		return "", fmt.Errorf("sign gcs object %s/%s: %w", bucket, object, err)
	}

	d.logger.Debug("signed gcs url",
		zap.String("bucket", bucket),
		zap.String("object", object),
		zap.String("method", opts.Method))

	return u, nil
}

// Exists reports whether the object is stored in the bucket
func (d *GCSDriver) Exists(ctx context.Context, bucket, object string) (bool, error) {
	_, err := d.client.Bucket(bucket).Object(object).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat gcs object %s/%s: %w", bucket, object, err)
	}
	return true, nil
}

// Delete removes the object from the bucket
func (d *GCSDriver) Delete(ctx context.Context, bucket, object string) error {
	err := d.client.Bucket(bucket).Object(object).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("delete gcs object %s/%s: %w", bucket, object, err)
	}
	return nil
}

func (d *GCSDriver) Close() error {
	return d.client.Close()
}
