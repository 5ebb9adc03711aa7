package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/packages"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidUserID = errors.New("invalid user id")

// PaymentService applies package purchases reported by the gateway.
//
// The steps are independent writes with no surrounding transaction and no
// idempotency key: a repeated callback credits the user again.
type PaymentService struct {
	db     *gorm.DB
	hashes HashChecker
}

func NewPaymentService(db *gorm.DB, hashes HashChecker) *PaymentService {
	return &PaymentService{db: db, hashes: hashes}
}

// ProcessPackagePayment handles a package purchase callback. The returned
// result is always non-nil; err is ErrInvalidUserID when a user id is present
// but unusable.
func (s *PaymentService) ProcessPackagePayment(ctx context.Context, p payfast.Payload) (*dto.PaymentResult, error) {
	res := &dto.PaymentResult{}
	res.AuditStored = recordCallback(ctx, s.db, s.hashes, "package", p)

	rawUserID := p.UserID()
	if rawUserID == "" {
		res.OK = true
		return res, nil
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		res.Error = ErrInvalidUserID.Error()
		return res, ErrInvalidUserID
	}
	res.UserID = userID.String()

	amount := packages.ParseAmount(p.Amount())
	addOn := packages.NormalizeAddOn(p.AddOn())
	pkg := packages.Resolve(amount, addOn)
	res.ViewsAdded = pkg.Views
	res.PackageType = pkg.Tier

	db := s.db.WithContext(ctx)

	payment := models.Payment{
		UserID:        userID,
		PackageType:   pkg.Tier,
		ViewsCredited: pkg.Views,
		AddOn:         addOn,
		TransactionID: p.TransactionID(),
		Status:        models.PaymentStatusAccepted,
	}
	if amount != nil {
		payment.Amount = *amount
	} else {
		payment.Amount = decimal.Zero
	}
	if err := db.Create(&payment).Error; err != nil {
		slog.Error("payment ledger insert failed", "action", "payment_insert", "user_id", res.UserID, "error", err)
	} else {
		res.PaymentStored = true
	}

	if err := s.creditViews(db, userID, pkg); err != nil {
		slog.Error("subscription update failed", "action", "subscription_credit", "user_id", res.UserID, "error", err)
	} else {
		res.SubscriptionUpdated = true
	}

	if err := resetViews(db, userID); err != nil {
		slog.Error("profile view reset failed", "action", "views_reset", "user_id", res.UserID, "error", err)
	} else {
		res.ViewsReset = true
	}

	if addOn != "" {
		if err := applyAddOn(db, userID, addOn); err != nil {
			slog.Error("add-on flag update failed", "action", "addon_apply", "user_id", res.UserID, "addon", addOn, "error", err)
		} else {
			res.AddOnApplied = true
		}
	}

	res.OK = res.PaymentStored && res.SubscriptionUpdated
	slog.Info("package payment processed",
		"user_id", res.UserID, "package", pkg.Tier, "views", pkg.Views,
		"payment_stored", res.PaymentStored, "subscription_updated", res.SubscriptionUpdated)
	return res, nil
}

// creditViews adds views to the existing balance and overwrites the tier, or
// starts a new balance. Read-then-write: concurrent credits can lose an update.
func (s *PaymentService) creditViews(db *gorm.DB, userID uuid.UUID, pkg packages.Package) error {
	var sub models.UserSubscription
	err := db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.UserSubscription{
			UserID:           userID,
			ViewsRemaining:   pkg.Views,
			SubscriptionType: pkg.Tier,
		}
		if err := db.Create(&sub).Error; err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load subscription: %w", err)
	}

	return db.Model(&sub).Updates(map[string]interface{}{
		"views_remaining":   sub.ViewsRemaining + pkg.Views,
		"subscription_type": pkg.Tier,
	}).Error
}

// resetViews deletes every view the user has made, starting a fresh window.
func resetViews(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("viewer_id = ?", userID).Delete(&models.ProfileView{}).Error
}

func applyAddOn(db *gorm.DB, userID uuid.UUID, addOn string) error {
	result := db.Model(&models.UserSubscription{}).Where("user_id = ?", userID).Update(addOn, true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	sub := models.UserSubscription{UserID: userID, SubscriptionType: packages.TierBasic}
	switch addOn {
	case packages.AddOnVerifiedBadge:
		sub.VerifiedBadge = true
	case packages.AddOnBoostProfile:
		sub.BoostProfile = true
	}
	return db.Create(&sub).Error
}
