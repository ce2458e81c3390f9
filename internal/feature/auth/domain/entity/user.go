// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and public profile fields.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on posts and profiles.
	Name string `gorm:"size:50;not null"`

	// Email is the user's email address used for authentication.
	// It is stored normalized (trimmed, lowercased) and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords and must never be serialized
	// into a response body.
	Password string `gorm:"size:255;not null"`

	// Bio is an optional self-description, at most 200 characters.
	Bio string `gorm:"size:200"`

	// ProfilePicture is an optional URL to the user's avatar image.
	ProfilePicture string `gorm:"size:500"`

	// CreatedAt is the timestamp when the user joined. Immutable after creation.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
