package model

import "time"

// SignedURLResult is returned for every successful signing call.
type SignedURLResult struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DeleteResponse is returned on a successful POST /delete-object request.
type DeleteResponse struct {
	Deleted string `json:"deleted"`
}

// ErrorResponse is returned for any failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
