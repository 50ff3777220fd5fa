// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case and stable: clients are expected
// to branch on them for programmatic error handling, with the accompanying
// message reserved for humans.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "rate_limited" // emitted by the rate-limit middleware
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidation       = "validation_failed"
	ErrCodeUploadFailed     = "upload_failed"
	ErrCodeAuthFailed       = "auth_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
