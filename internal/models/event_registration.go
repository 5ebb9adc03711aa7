package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RegistrationPending = "pending"
	RegistrationPaid    = "paid"
)

// EventRegistration is one submission of the matchmaking event form.
// PaymentStatus only ever moves from pending to paid.
type EventRegistration struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RegistrationID string          `gorm:"size:32;not null;uniqueIndex" json:"registration_id"`
	TransactionID  string          `gorm:"size:64;not null" json:"transaction_id"`
	FullName       string          `gorm:"size:150;not null" json:"full_name"`
	Phone          string          `gorm:"size:30;not null" json:"phone"`
	Email          string          `gorm:"size:255" json:"email,omitempty"`
	Gender         string          `gorm:"size:10;not null" json:"gender"`
	Age            int             `gorm:"not null" json:"age"`
	City           string          `gorm:"size:100;not null" json:"city"`
	Profession     string          `gorm:"size:100;not null" json:"profession"`
	MaritalStatus  string          `gorm:"size:30;not null" json:"marital_status"`
	Adults         int             `gorm:"not null" json:"adults"`
	Children       int             `gorm:"not null;default:0" json:"children"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentStatus  string          `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod  string          `gorm:"size:30" json:"payment_method,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
