package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/packages"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrContentRejected = errors.New("content rejected")
)

type ProfileService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewProfileService(db *gorm.DB, filter *ContentFilter) *ProfileService {
	return &ProfileService{db: db, filter: filter}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// ProfileUpdates turns a partial update into a column map. Only fields that
// are present in the request are written.
func (s *ProfileService) ProfileUpdates(req *dto.UpdateProfileRequest) (map[string]interface{}, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setString("full_name", req.FullName)
	setString("gender", req.Gender)
	setString("city", req.City)
	setString("profession", req.Profession)
	setString("marital_status", req.MaritalStatus)
	setString("education", req.Education)
	setString("religion", req.Religion)
	setString("phone", req.Phone)

	if req.About != nil {
		if ok, reason := s.filter.Check(*req.About); !ok {
			return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
		}
		updates["about"] = strings.TrimSpace(*req.About)
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must be a date (YYYY-MM-DD)", ErrValidation)
		}
		updates["date_of_birth"] = dob
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	return updates, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	updates, err := s.ProfileUpdates(req)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := s.db.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Get(ctx, userID)
}

// Subscription returns the member's balance; members who never paid get an
// empty basic subscription.
func (s *ProfileService) Subscription(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserSubscription{UserID: userID, SubscriptionType: packages.TierBasic}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}
