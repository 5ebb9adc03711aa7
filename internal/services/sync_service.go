package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBalance is the recomputed state of one user's subscription.
type UserBalance struct {
	UserID uuid.UUID
	Views  int
	Tier   string
}

// AggregateLedger sums credited views per user and takes each user's tier
// from their latest payment, add-ons included, the same way the payment
// callback overwrites it. Equal timestamps are broken by the larger credit,
// then by the larger payment id. Output is ordered by user id.
func AggregateLedger(payments []models.Payment) []UserBalance {
	type acc struct {
		views  int
		latest *models.Payment
	}
	byUser := make(map[uuid.UUID]*acc)

	for i := range payments {
		p := &payments[i]
		a, ok := byUser[p.UserID]
		if !ok {
			a = &acc{}
			byUser[p.UserID] = a
		}
		a.views += p.ViewsCredited
		if a.latest == nil || newerPayment(p, a.latest) {
			a.latest = p
		}
	}

	out := make([]UserBalance, 0, len(byUser))
	for userID, a := range byUser {
		out = append(out, UserBalance{UserID: userID, Views: a.views, Tier: a.latest.PackageType})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out
}

func newerPayment(a, b *models.Payment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.ViewsCredited != b.ViewsCredited {
		return a.ViewsCredited > b.ViewsCredited
	}
	return a.ID.String() > b.ID.String()
}

// SyncService rebuilds subscription balances from the payments ledger.
type SyncService struct {
	db *gorm.DB
}

func NewSyncService(db *gorm.DB) *SyncService {
	return &SyncService{db: db}
}

// Run recomputes every user's balance, or only userID's when it is non-nil.
// A failure for one user is collected and the batch continues.
func (s *SyncService) Run(ctx context.Context, userID *uuid.UUID) (*dto.SyncResult, error) {
	db := s.db.WithContext(ctx)

	q := db.Where("status = ?", models.PaymentStatusAccepted)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var ledger []models.Payment
	if err := q.Order("created_at ASC").Find(&ledger).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	balances := AggregateLedger(ledger)
	res := &dto.SyncResult{Processed: len(balances), Errors: []dto.SyncError{}}

	for _, b := range balances {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, dto.SyncError{UserID: b.UserID.String(), Error: err.Error()})
			continue
		}
		if err := setBalance(db, b); err != nil {
			slog.Error("subscription sync failed", "action", "subscription_sync", "user_id", b.UserID.String(), "error", err)
			res.Errors = append(res.Errors, dto.SyncError{UserID: b.UserID.String(), Error: err.Error()})
			continue
		}
		if err := resetViews(db, b.UserID); err != nil {
			slog.Error("profile view reset failed", "action", "views_reset", "user_id", b.UserID.String(), "error", err)
			res.Errors = append(res.Errors, dto.SyncError{UserID: b.UserID.String(), Error: err.Error()})
			continue
		}
		res.Updated++
	}

	slog.Info("subscription sync finished", "processed", res.Processed, "updated", res.Updated, "errors", len(res.Errors))
	return res, nil
}

// setBalance overwrites the balance and tier, creating the row if needed.
func setBalance(db *gorm.DB, b UserBalance) error {
	result := db.Model(&models.UserSubscription{}).
		Where("user_id = ?", b.UserID).
		Updates(map[string]interface{}{
			"views_remaining":   b.Views,
			"subscription_type": b.Tier,
		})
	if result.Error != nil {
		return fmt.Errorf("update subscription: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	sub := models.UserSubscription{UserID: b.UserID, ViewsRemaining: b.Views, SubscriptionType: b.Tier}
	if err := db.Create(&sub).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}
