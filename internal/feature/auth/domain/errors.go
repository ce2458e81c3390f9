// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication and user operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserAlreadyExists indicates that a user with the given email already exists.
	// This is returned during registration when the store's uniqueness constraint fires.
	ErrUserAlreadyExists = errors.New("user already exists with this email")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// Unknown email and wrong password both map here so the message never reveals
	// which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnavailable indicates a transient store failure (timeout or cancellation).
	// Callers may safely retry the operation.
	ErrUnavailable = errors.New("store temporarily unavailable")
)
