package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrMissingRegistration  = errors.New("registration id is required")
)

const (
	MinAge = 18
	MaxAge = 99

	paymentMethodPayFast = "PayFast"
)

var (
	AdultPrice      = decimal.NewFromInt(3000)
	ChildPrice      = decimal.NewFromInt(1500)
	DiscountPercent = decimal.NewFromInt(10)
)

// Quote is the price breakdown of a registration.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// PriceRegistration applies the per-attendee rates and the standing discount.
func PriceRegistration(adults, children int) Quote {
	subtotal := AdultPrice.Mul(decimal.NewFromInt(int64(adults))).
		Add(ChildPrice.Mul(decimal.NewFromInt(int64(children))))
	discount := subtotal.Mul(DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount).Round(2),
	}
}

// Attendance holds the numeric registration fields once validated.
type Attendance struct {
	Age      int
	Adults   int
	Children int
}

// ValidateRegistration checks required fields, the age range and attendee
// counts. It runs before any write.
func ValidateRegistration(req *dto.RegistrationRequest) (Attendance, error) {
	var a Attendance
	if err := validateStruct(req); err != nil {
		return a, err
	}

	age, err := wholeNumber(req.Age, "age")
	if err != nil {
		return a, err
	}
	if age < MinAge || age > MaxAge {
		return a, fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinAge, MaxAge)
	}

	adults, err := wholeNumber(req.Adults, "adults")
	if err != nil {
		return a, err
	}
	if adults < 1 {
		return a, fmt.Errorf("%w: at least one adult is required", ErrValidation)
	}

	children := 0
	if req.Children != "" {
		if children, err = wholeNumber(req.Children, "children"); err != nil {
			return a, err
		}
	}

	return Attendance{Age: age, Adults: adults, Children: children}, nil
}

// wholeNumber accepts integer literals only, so 1.0 and 1e2 are rejected.
func wholeNumber(n json.Number, field string) (int, error) {
	lit := strings.TrimSpace(n.String())
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}
	if strings.ContainsAny(lit, ".eE") || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrValidation, field)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s cannot be negative", ErrValidation, field)
	}
	if d.GreaterThan(decimal.NewFromInt(1000)) {
		return 0, fmt.Errorf("%w: %s is too large", ErrValidation, field)
	}
	return int(d.IntPart()), nil
}

const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRegistrationID returns an id like REG-20261016-K7Q2ZD.
func NewRegistrationID(now time.Time) string {
	var b strings.Builder
	b.WriteString("REG-")
	b.WriteString(now.UTC().Format("20060102"))
	b.WriteByte('-')
	limit := big.NewInt(int64(len(idAlphabet)))
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			n = big.NewInt((now.UnixNano() >> uint(i)) % limit.Int64())
		}
		b.WriteByte(idAlphabet[n.Int64()])
	}
	return b.String()
}

// NewTransactionID returns an id like TXN-1792141800000-9f86d081.
func NewTransactionID(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("TXN-%d-%08x", now.UnixMilli(), now.UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), hex.EncodeToString(buf))
}

type RegistrationService struct {
	db     *gorm.DB
	hashes HashChecker
	now    func() time.Time
}

func NewRegistrationService(db *gorm.DB, hashes HashChecker) *RegistrationService {
	return &RegistrationService{db: db, hashes: hashes, now: time.Now}
}

// Create validates the form, prices it and stores a pending registration.
func (s *RegistrationService) Create(ctx context.Context, req *dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	att, err := ValidateRegistration(req)
	if err != nil {
		return nil, err
	}

	quote := PriceRegistration(att.Adults, att.Children)
	now := s.now()

	reg := models.EventRegistration{
		RegistrationID: NewRegistrationID(now),
		TransactionID:  NewTransactionID(now),
		FullName:       strings.TrimSpace(req.FullName),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		Gender:         req.Gender,
		Age:            att.Age,
		City:           strings.TrimSpace(req.City),
		Profession:     strings.TrimSpace(req.Profession),
		MaritalStatus:  strings.TrimSpace(req.MaritalStatus),
		Adults:         att.Adults,
		Children:       att.Children,
		TotalAmount:    quote.Total,
		PaymentStatus:  models.RegistrationPending,
	}

	if err := s.db.WithContext(ctx).Create(&reg).Error; err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	slog.Info("event registration created", "registration_id", reg.RegistrationID, "total", quote.Total.String())
	return &dto.RegistrationResponse{
		RegistrationID: reg.RegistrationID,
		TransactionID:  reg.TransactionID,
		Subtotal:       quote.Subtotal,
		Discount:       quote.Discount,
		TotalAmount:    quote.Total,
		PaymentStatus:  reg.PaymentStatus,
	}, nil
}

func (s *RegistrationService) Get(ctx context.Context, registrationID string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := s.db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}
	return &reg, nil
}

// MarkPaid records the callback and flips the registration to paid. An
// unknown id updates nothing and still reports success.
func (s *RegistrationService) MarkPaid(ctx context.Context, registrationID string, p payfast.Payload) (*dto.RegistrationPaymentResult, error) {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		registrationID = p.RegistrationID()
	}
	if registrationID == "" {
		return nil, ErrMissingRegistration
	}

	res := &dto.RegistrationPaymentResult{RegistrationID: registrationID}
	res.AuditStored = recordCallback(ctx, s.db, s.hashes, "event", p)

	now := s.now()
	err := s.db.WithContext(ctx).Model(&models.EventRegistration{}).
		Where("registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"payment_status": models.RegistrationPaid,
			"payment_method": paymentMethodPayFast,
			"paid_at":        now,
		}).Error
	if err != nil {
		slog.Error("registration payment update failed", "action", "registration_paid", "basket_id", registrationID, "error", err)
		return res, fmt.Errorf("failed to update registration: %w", err)
	}

	res.OK = true
	res.PaymentStatus = models.RegistrationPaid
	return res, nil
}
