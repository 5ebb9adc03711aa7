package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the auth user row. Admin-created users are confirmed on insert.
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email            string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             string     `gorm:"size:20;default:'member'" json:"role"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
