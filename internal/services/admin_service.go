package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type AdminService struct {
	db    *gorm.DB
	store ObjectStore
	now   func() time.Time
}

func NewAdminService(db *gorm.DB, store ObjectStore) *AdminService {
	return &AdminService{db: db, store: store, now: time.Now}
}

// GeneratePassword returns a random URL-safe password from 16 bytes.
func GeneratePassword() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// CreateProfile creates a confirmed user with a random password and the
// profile row. The plain password is returned once.
func (s *AdminService) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.CreateProfileResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	password, err := GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:               uuid.New(),
		Email:            req.Email,
		Password:         string(hash),
		EmailConfirmedAt: &now,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := models.Profile{
		UserID:        user.ID,
		FullName:      strings.TrimSpace(req.FullName),
		Gender:        req.Gender,
		City:          req.City,
		Profession:    req.Profession,
		MaritalStatus: req.MaritalStatus,
		Education:     req.Education,
		Religion:      req.Religion,
		Phone:         req.Phone,
		About:         req.About,
		IsPublished:   req.IsPublished,
	}
	if req.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			profile.DateOfBirth = &dob
		}
	}
	if err := db.Create(&profile).Error; err != nil {
		slog.Error("profile insert failed after user creation", "action", "admin_create_profile", "user_id", user.ID.String(), "error", err)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("admin created profile", "user_id", user.ID.String())
	return &dto.CreateProfileResponse{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Email:     user.Email,
		Password:  password,
	}, nil
}

// DeleteUser removes everything that references userID, one table at a time.
// Steps do not stop on failure; the result tallies each one. Payments are kept
// as ledger history.
func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID) *dto.DeleteUserResult {
	db := s.db.WithContext(ctx)
	res := &dto.DeleteUserResult{
		UserID:  userID,
		Deleted: make(map[string]bool),
		Errors:  make(map[string]string),
	}
	step := func(name string, err error) {
		if err != nil {
			res.Deleted[name] = false
			res.Errors[name] = err.Error()
			res.Failed++
			slog.Error("cascade delete step failed", "action", "admin_delete_"+name, "user_id", userID.String(), "error", err)
			return
		}
		res.Deleted[name] = true
		res.Succeeded++
	}

	step("images", s.deleteImages(ctx, db, userID))
	step("profile", db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error)
	step("subscription", db.Where("user_id = ?", userID).Delete(&models.UserSubscription{}).Error)
	step("profile_views", db.Where("viewer_id = ? OR viewed_id = ?", userID, userID).Delete(&models.ProfileView{}).Error)
	step("interactions", db.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.Interaction{}).Error)
	step("user", db.Where("id = ?", userID).Delete(&models.User{}).Error)

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res
}

func (s *AdminService) deleteImages(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	var images []models.ProfileImage
	if err := db.Where("user_id = ?", userID).Find(&images).Error; err != nil {
		return fmt.Errorf("list images: %w", err)
	}
	var failed []string
	if s.store != nil {
		for _, img := range images {
			if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
				failed = append(failed, img.ObjectKey)
			}
		}
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.ProfileImage{}).Error; err != nil {
		return fmt.Errorf("delete image rows: %w", err)
	}
	if s.store == nil && len(images) > 0 {
		return fmt.Errorf("storage not configured: %d image objects left in bucket", len(images))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d image objects could not be removed", len(failed))
	}
	return nil
}
