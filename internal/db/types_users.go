package db

import (
	"time"

	"github.com/google/uuid"
)

// UserRole tags a user as a student or a recruiter.
type UserRole string

// User roles.
const (
	RoleStudent   UserRole = "STUDENT"
	RoleRecruiter UserRole = "RECRUITER"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleRecruiter
}

// User is an identity record mirrored from the external identity provider.
// ExternalID is the provider's id and is the key for lifecycle events.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Role       UserRole  `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
