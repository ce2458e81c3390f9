// Package entity defines the domain entities for the posts feature.
package entity

import (
	"time"

	authentity "feed_backend/internal/feature/auth/domain/entity"
)

// Post represents a short text update published by a user.
type Post struct {
	// ID is the unique identifier for the post.
	ID uint `gorm:"primaryKey"`

	// Content is the post body, 1-280 characters after trimming.
	Content string `gorm:"size:280;not null"`

	// AuthorID references the user who created the post. Immutable after creation.
	AuthorID uint `gorm:"index;not null"`

	// Author is the owning user, loaded alongside the post for display.
	Author authentity.User `gorm:"foreignKey:AuthorID"`

	// CreatedAt is the timestamp when the post was created. Immutable.
	CreatedAt time.Time `gorm:"index"`

	// UpdatedAt is the timestamp when the post row was last written.
	UpdatedAt time.Time
}
