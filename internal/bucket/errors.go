package bucket

import "fmt"

// SigningError is returned when the backend could not produce a signed URL.
// Credential, permission, bucket and network failures all end up here.
type SigningError struct {
	Bucket string
	Object string
	Err    error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("sign %s/%s: %v", e.Bucket, e.Object, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Bucket string
	Object string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s/%s", e.Bucket, e.Object)
}

func ErrNotFound(bucket, object string) error {
	return NotFoundError{Bucket: bucket, Object: object}
}
