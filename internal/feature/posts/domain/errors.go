// Package domain defines domain-level errors for the posts feature.
package domain

import "errors"

var (
	// ErrPostNotFound indicates that no post exists with the given ID.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidContent indicates that the post body is empty or too long
	// after trimming.
	ErrInvalidContent = errors.New("post content must be 1-280 characters")

	// ErrUnavailable indicates a transient store failure (timeout or cancellation).
	// Callers may safely retry the operation.
	ErrUnavailable = errors.New("store temporarily unavailable")
)
