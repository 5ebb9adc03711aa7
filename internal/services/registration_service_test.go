package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() *dto.RegistrationRequest {
	return &dto.RegistrationRequest{
		FullName:      "Ayesha Khan",
		Phone:         "03001234567",
		Gender:        "female",
		Age:           json.Number("27"),
		City:          "Lahore",
		Profession:    "Doctor",
		MaritalStatus: "single",
		Adults:        json.Number("2"),
		Children:      json.Number("1"),
	}
}

func TestPriceRegistration(t *testing.T) {
	tests := []struct {
		adults, children int
		subtotal, total  string
	}{
		{1, 0, "3000", "2700"},
		{2, 1, "7500", "6750"},
		{3, 2, "12000", "10800"},
	}
	for _, tt := range tests {
		q := PriceRegistration(tt.adults, tt.children)
		assert.Equal(t, tt.subtotal, q.Subtotal.String())
		assert.Equal(t, tt.total, q.Total.String())
		assert.True(t, q.Subtotal.Sub(q.Discount).Equal(q.Total))
	}
}

func TestValidateRegistration(t *testing.T) {
	att, err := ValidateRegistration(validRegistration())
	require.NoError(t, err)
	assert.Equal(t, Attendance{Age: 27, Adults: 2, Children: 1}, att)

	noChildren := validRegistration()
	noChildren.Children = ""
	att, err = ValidateRegistration(noChildren)
	require.NoError(t, err)
	assert.Equal(t, 0, att.Children)

	cases := map[string]func(r *dto.RegistrationRequest){
		"blank name":       func(r *dto.RegistrationRequest) { r.FullName = "   " },
		"missing phone":    func(r *dto.RegistrationRequest) { r.Phone = "" },
		"bad gender":       func(r *dto.RegistrationRequest) { r.Gender = "other" },
		"blank city":       func(r *dto.RegistrationRequest) { r.City = " " },
		"too young":        func(r *dto.RegistrationRequest) { r.Age = "17" },
		"too old":          func(r *dto.RegistrationRequest) { r.Age = "100" },
		"fractional age":   func(r *dto.RegistrationRequest) { r.Age = "25.5" },
		"no adults":        func(r *dto.RegistrationRequest) { r.Adults = "0" },
		"fractional adult": func(r *dto.RegistrationRequest) { r.Adults = "1.5" },
		"decimal adults":   func(r *dto.RegistrationRequest) { r.Adults = "1.0" },
		"exponent age":     func(r *dto.RegistrationRequest) { r.Age = "2.5e1" },
		"negative child":   func(r *dto.RegistrationRequest) { r.Children = "-1" },
		"bad email":        func(r *dto.RegistrationRequest) { r.Email = "nope" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRegistration()
			mutate(req)
			_, err := ValidateRegistration(req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	req := validRegistration()
	req.FullName = ""
	_, err := ValidateRegistration(req)
	require.Error(t, err)
	assert.Equal(t, "full_name is required", ValidationMessage(err))
}

func TestRegistrationIDs(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	regID := NewRegistrationID(now)
	assert.Regexp(t, regexp.MustCompile(`^REG-20261016-[A-Z2-9]{6}$`), regID)

	txn := NewTransactionID(now)
	assert.Regexp(t, regexp.MustCompile(`^TXN-\d{13}-[0-9a-f]{8}$`), txn)
	assert.NotEqual(t, txn, NewTransactionID(now))
}

func TestRegistrationCreate(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewRegistrationService(db, nil)

	mock.ExpectQuery(`INSERT INTO "event_registrations"`).WillReturnRows(testutil.IDRows(uuid.NewString()))

	res, err := svc.Create(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "6750", res.TotalAmount.String())
	assert.Equal(t, "pending", res.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationCreate_InvalidWritesNothing(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewRegistrationService(db, nil)

	req := validRegistration()
	req.Adults = "0"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationGet_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewRegistrationService(db, nil)

	mock.ExpectQuery(`SELECT \* FROM "event_registrations"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err := svc.Get(context.Background(), "REG-20261016-AAAAAA")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	mock.ExpectQuery(`SELECT \* FROM "event_registrations"`).WillReturnError(errors.New("connection reset"))
	_, err = svc.Get(context.Background(), "REG-20261016-AAAAAA")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRegistrationNotFound)
}

func TestMarkPaid(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewRegistrationService(db, nil)

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectExec(`UPDATE "event_registrations" SET`).WillReturnResult(testutil.Affected(0))

	res, err := svc.MarkPaid(context.Background(), "", payfast.Payload{"basket_id": "REG-20261016-AAAAAA"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "REG-20261016-AAAAAA", res.RegistrationID)
	assert.Equal(t, "paid", res.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_MissingID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewRegistrationService(db, nil)

	_, err := svc.MarkPaid(context.Background(), " ", payfast.Payload{})
	assert.ErrorIs(t, err, ErrMissingRegistration)
	assert.NoError(t, mock.ExpectationsWereMet())
}
