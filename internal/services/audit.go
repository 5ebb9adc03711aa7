package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HashChecker verifies the gateway's validation hash. Only the audit row uses
// the answer.
type HashChecker interface {
	MerchantID() string
	SecuredKey() string
}

// recordCallback stores the raw callback. It never fails the caller: a failed
// insert is logged and reported as false.
func recordCallback(ctx context.Context, db *gorm.DB, hc HashChecker, source string, p payfast.Payload) bool {
	row := models.PayFastTransaction{
		BasketID:      p.BasketID(),
		TransactionID: p.TransactionID(),
		Amount:        p.String("amount", "transaction_amount", "txnamt", "TXNAMT", "amount_gross"),
		ErrCode:       p.ErrCode(),
		Source:        source,
		Payload:       datatypes.JSON(p.JSON()),
	}
	if uid := p.UserID(); uid != "" {
		row.UserID = &uid
	}
	if hc != nil {
		if valid, ok := payfast.CheckHash(p, hc.SecuredKey(), hc.MerchantID()); ok {
			row.HashValid = &valid
		}
	}

	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		slog.Error("payfast audit insert failed",
			"action", "payfast_audit", "source", source, "basket_id", row.BasketID, "error", err)
		return false
	}
	return true
}
