package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSubscription holds a member's view-credit balance and add-on flags.
// There is at most one row per user.
type UserSubscription struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ViewsRemaining   int       `gorm:"not null;default:0" json:"views_remaining"`
	SubscriptionType string    `gorm:"size:20;not null;default:'basic'" json:"subscription_type"`
	VerifiedBadge    bool      `gorm:"default:false" json:"verified_badge"`
	BoostProfile     bool      `gorm:"default:false" json:"boost_profile"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// ProfileView records that ViewerID opened ViewedID's profile.
type ProfileView struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ViewerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"viewer_id"`
	ViewedID  uuid.UUID `gorm:"type:uuid;not null;index" json:"viewed_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction is an interest, shortlist or block between two members.
type Interaction struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Kind       string    `gorm:"size:20;not null" json:"kind"`
	Status     string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
