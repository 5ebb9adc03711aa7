package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public matrimonial profile of a user.
type Profile struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName      string     `gorm:"size:150;not null" json:"full_name"`
	Gender        string     `gorm:"size:10" json:"gender"`
	DateOfBirth   *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	City          string     `gorm:"size:100" json:"city"`
	Profession    string     `gorm:"size:100" json:"profession"`
	MaritalStatus string     `gorm:"size:30" json:"marital_status"`
	Education     string     `gorm:"size:150" json:"education"`
	Religion      string     `gorm:"size:50" json:"religion"`
	Phone         string     `gorm:"size:30" json:"phone"`
	About         string     `gorm:"type:text" json:"about"`
	IsPublished   bool       `gorm:"default:false" json:"is_published"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProfileImage references an object in the profile image bucket.
type ProfileImage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ObjectKey   string    `gorm:"size:512;not null" json:"object_key"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	ContentType string    `gorm:"size:50" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	IsPrimary   bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}
