package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type: use JPEG, PNG or WebP")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageNotFound    = errors.New("image not found")
	ErrStorageDisabled  = errors.New("image storage is not configured")
)

// ObjectStore is the profile image bucket.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ValidateImage checks the declared content type and size.
func ValidateImage(contentType string, size, maxSize int64) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[ct]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if size <= 0 {
		return "", ErrEmptyImage
	}
	if size > maxSize {
		return "", fmt.Errorf("%w: maximum is %s", ErrImageTooLarge, formatSize(maxSize))
	}
	return ext, nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}

// ImageObjectKey builds profiles/<user>/<unix>-<slug><ext>.
func ImageObjectKey(userID uuid.UUID, filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "photo"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	return fmt.Sprintf("profiles/%s/%d-%s%s", userID, now.Unix(), name, ext)
}

type ImageService struct {
	db      *gorm.DB
	store   ObjectStore
	maxSize int64
	now     func() time.Time
}

// NewImageService accepts a nil store; uploads then fail with ErrStorageDisabled.
func NewImageService(db *gorm.DB, store ObjectStore, maxSize int64) *ImageService {
	return &ImageService{db: db, store: store, maxSize: maxSize, now: time.Now}
}

// Upload stores the image and records it. The user's first image is primary.
func (s *ImageService) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, size int64, body io.Reader) (*models.ProfileImage, error) {
	ext, err := ValidateImage(contentType, size, s.maxSize)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	key := ImageObjectKey(userID, filename, ext, s.now())
	url, err := s.store.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.ProfileImage{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		slog.Warn("image count failed", "user_id", userID.String(), "error", err)
	}

	img := models.ProfileImage{
		UserID:      userID,
		ObjectKey:   key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   size,
		IsPrimary:   count == 0,
	}
	if err := db.Create(&img).Error; err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Error("orphaned image object", "action", "image_upload", "user_id", userID.String(), "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	return &img, nil
}

func (s *ImageService) List(ctx context.Context, userID uuid.UUID) ([]models.ProfileImage, error) {
	var images []models.ProfileImage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// Delete removes the object first, then the row.
func (s *ImageService) Delete(ctx context.Context, imageID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	var img models.ProfileImage
	if err := db.First(&img, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to load image: %w", err)
	}
	if s.store == nil {
		return ErrStorageDisabled
	}
	if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete image object: %w", err)
	}
	if err := db.Delete(&img).Error; err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	return nil
}
