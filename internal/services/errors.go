// Package services defines the business logic for recipes, ratings, comments,
// and favorites. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound indicates that the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrForbidden is returned when a caller attempts to update or delete a
	// recipe they do not own.
	ErrForbidden = errors.New("not the recipe owner")

	// ErrInvalidRating is returned when a rating value is outside the allowed
	// range (1 to 5 inclusive).
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrEmptyComment is returned when a comment body is empty after trimming.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrCommentTooLong is returned when a comment body exceeds the configured
	// maximum length.
	ErrCommentTooLong = errors.New("comment too long")
)

// ValidationError reports a missing or malformed required input field on
// recipe creation. The field name is safe to surface to callers.
type ValidationError struct {
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
