package drivers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// S3Config configures the S3-compatible driver. Empty keys fall back to the
// default AWS credential chain.
type S3Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3Driver presigns SigV4 URLs for S3-compatible storage
type S3Driver struct {
	client  *s3.Client
	presign *s3.PresignClient
	logger  *zap.Logger
}

// NewS3Driver creates a new S3 signing driver
func NewS3Driver(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3Driver, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3DriverFromClient(client, logger), nil
}

// NewS3DriverFromClient wraps an existing client
func NewS3DriverFromClient(client *s3.Client, logger *zap.Logger) *S3Driver {
	return &S3Driver{
		client:  client,
		presign: s3.NewPresignClient(client),
		logger:  logger,
	}
}

func (d *S3Driver) Name() string {
	return "s3"
}

// SignedURL presigns a GetObject or PutObject request valid for opts.TTL
func (d *S3Driver) SignedURL(ctx context.Context, bucket, object string, opts SignOptions) (string, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		return "", ErrExpired
	}

	var (
		req *v4.PresignedHTTPRequest
		err error
	)
	switch opts.Method {
	case http.MethodGet:
		req, err = d.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(object),
		}, s3.WithPresignExpires(ttl))
	case http.MethodPut:
		input := &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(object),
		}
		if opts.ContentType != "" {
			input.ContentType = aws.String(opts.ContentType)
		}
		req, err = d.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(ttl))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, opts.Method)
	}
	if err != nil {
		return "", fmt.Errorf("presign s3 object %s/%s: %w", bucket, object, err)
	}

	d.logger.Debug("presigned s3 url",
		zap.String("bucket", bucket),
		zap.String("object", object),
		zap.String("method", opts.Method))

	return req.URL, nil
}

// Exists checks for the object with HeadObject
func (d *S3Driver) Exists(ctx context.Context, bucket, object string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s/%s: %w", bucket, object, err)
	}
	return true, nil
}

// Delete removes an object. DeleteObject succeeds for missing keys, so the
// object is checked first.
func (d *S3Driver) Delete(ctx context.Context, bucket, object string) error {
	exists, err := d.Exists(ctx, bucket, object)
	if err != nil {
		return err
	}
	if !exists {
		return ErrObjectNotFound
	}

	_, err = d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	})
	if err != nil {
		if isS3NotFound(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("delete object %s/%s: %w", bucket, object, err)
	}
	return nil
}

func (d *S3Driver) Close() error {
	return nil
}

func isS3NotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
