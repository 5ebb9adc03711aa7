package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const PaymentStatusAccepted = "accepted"

// Payment is an append-only ledger row per accepted transaction.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PackageType   string          `gorm:"size:20;not null" json:"package_type"`
	ViewsCredited int             `gorm:"not null;default:0" json:"views_credited"`
	AddOn         string          `gorm:"size:30" json:"add_on,omitempty"`
	TransactionID string          `gorm:"size:100;index" json:"transaction_id"`
	Status        string          `gorm:"size:20;not null;default:'accepted'" json:"status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

// PayFastTransaction is a raw copy of a gateway callback, kept for diagnostics.
type PayFastTransaction struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        *string        `gorm:"size:64" json:"user_id,omitempty"`
	BasketID      string         `gorm:"size:100" json:"basket_id"`
	TransactionID string         `gorm:"size:100" json:"transaction_id"`
	Amount        string         `gorm:"size:50" json:"amount"`
	ErrCode       string         `gorm:"size:20" json:"err_code"`
	Source        string         `gorm:"size:30" json:"source"`
	HashValid     *bool          `json:"hash_valid,omitempty"`
	Payload       datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (PayFastTransaction) TableName() string {
	return "payfast_transactions"
}
