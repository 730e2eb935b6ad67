// Package types defines the shared domain entities consumed by the matching core.
package types

import (
	"time"

	"github.com/google/uuid"
)

// User is a candidate profile. The matching core reads it but never mutates it;
// creation and updates belong to the profile CRUD layer.
type User struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Bio          string          `json:"bio,omitempty"` // free text, max 500 chars
	Skills       []string        `json:"skills"`
	Location     string          `json:"location,omitempty"`
	Experience   ExperienceLevel `json:"experience,omitempty"`
	ProfileImage string          `json:"profile_image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
