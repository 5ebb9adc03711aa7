package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"gorm.io/gorm"
)

// Notifier delivers a staff notification.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

type ContactService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewContactService accepts a nil notifier; messages are then only stored.
func NewContactService(db *gorm.DB, notifier Notifier) *ContactService {
	return &ContactService{db: db, notifier: notifier}
}

func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*models.ContactMessage, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	db := s.db.WithContext(ctx)
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	if s.notifier == nil {
		return &msg, nil
	}
	subject := "New contact message"
	if msg.Subject != "" {
		subject += ": " + msg.Subject
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", msg.Name, msg.Email, msg.Phone, msg.Message)
	if err := s.notifier.Notify(ctx, subject, body); err != nil {
		slog.Error("contact notification failed", "action", "contact_notify", "error", err)
		return &msg, nil
	}

	if err := db.Model(&msg).Update("notified", true).Error; err != nil {
		slog.Warn("failed to mark contact message notified", "error", err)
	} else {
		msg.Notified = true
	}
	return &msg, nil
}
