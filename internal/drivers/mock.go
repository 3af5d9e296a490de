package drivers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Make sure *MockDriver satisfies Driver interface.
var _ Driver = (*MockDriver)(nil)

// SignCall records the arguments of one MockDriver.SignedURL call.
type SignCall struct {
	Bucket string
	Object string
	Opts   SignOptions
}

// MockDriver is an in-memory Driver for tests and for local runs with
// STORAGE_BACKEND=mock. Its URLs are not signed, but they encode bucket,
// object, method and lifetime so callers can tell them apart.
type MockDriver struct {
	// SignErr, when set, is returned by every SignedURL call.
	SignErr error
	// SignDelay mimics the signing round trip.
	SignDelay time.Duration

	mu      sync.Mutex
	objects map[string]bool
	calls   []SignCall
}

// NewMockDriver creates a mock holding the given bucket/object keys.
func NewMockDriver(objects ...string) *MockDriver {
	m := &MockDriver{objects: make(map[string]bool)}
	for _, o := range objects {
		m.objects[o] = true
	}
	return m
}

func (m *MockDriver) Name() string {
	return "mock"
}

// SignedURL returns https://mock.invalid/{bucket}/{object}?... and records the call.
// Object names are not escaped.
func (m *MockDriver) SignedURL(ctx context.Context, bucket, object string, opts SignOptions) (string, error) {
	if m.SignDelay > 0 {
		select {
		case <-time.After(m.SignDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, SignCall{Bucket: bucket, Object: object, Opts: opts})
	m.mu.Unlock()

	if m.SignErr != nil {
		return "", m.SignErr
	}
	if opts.TTL <= 0 {
		return "", ErrExpired
	}

	q := url.Values{}
	q.Set("method", opts.Method)
	q.Set("expires_in", strconv.FormatInt(int64(opts.TTL/time.Second), 10))
	return fmt.Sprintf("https://mock.invalid/%s/%s?%s", bucket, object, q.Encode()), nil
}

// Calls returns a copy of the recorded SignedURL calls.
func (m *MockDriver) Calls() []SignCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SignCall(nil), m.calls...)
}

func (m *MockDriver) Exists(ctx context.Context, bucket, object string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[bucket+"/"+object], nil
}

func (m *MockDriver) Delete(ctx context.Context, bucket, object string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := bucket + "/" + object
	if !m.objects[key] {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *MockDriver) Close() error {
	return nil
}
