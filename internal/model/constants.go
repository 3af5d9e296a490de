package model

import "time"

// Domain constants shared across the bucket, api and drivers packages.
const (
	SignedURLTTL = 15 * time.Minute
	VideoPrefix  = "video"

	// DemoFileName and DemoID are signed by the demo route.
	DemoFileName = "VID_20200103_135115.mp4"
	DemoID       = "cluvqhyly0007uwfdmg2hn33a"
)

// Error codes carried in ErrorResponse.Error.
const (
	CodeSigningFailed   = "SIGNING_FAILED"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternalError   = "INTERNAL_ERROR"
)
