package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHashes struct{ merchant, key string }

func (h staticHashes) MerchantID() string { return h.merchant }
func (h staticHashes) SecuredKey() string { return h.key }

func TestProcessPackagePayment_NoUser(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, staticHashes{"102", "secret"})

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{"basket_id": "B-1", "err_code": "000"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.AuditStored)
	assert.False(t, res.PaymentStored)
	assert.False(t, res.SubscriptionUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPackagePayment_AuditFailureIsNotFatal(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnError(errors.New("relation does not exist"))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{"basket_id": "B-1"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.False(t, res.AuditStored)
}

func TestProcessPackagePayment_InvalidUser(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{"user_id": "not-a-uuid", "amount": "5000"})
	assert.ErrorIs(t, err, ErrInvalidUserID)
	require.NotNil(t, res)
	assert.False(t, res.PaymentStored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPackagePayment_ExistingSubscription(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "views_remaining", "subscription_type"}).
			AddRow(uuid.NewString(), userID.String(), 10, "basic"))
	mock.ExpectExec(`UPDATE "user_subscriptions"`).WillReturnResult(testutil.Affected(1))
	mock.ExpectExec(`DELETE FROM "profile_views"`).WillReturnResult(testutil.Affected(4))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{
		"userId":         userID.String(),
		"amount":         "8000.00",
		"transaction_id": "PF-77",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.PaymentStored)
	assert.True(t, res.SubscriptionUpdated)
	assert.True(t, res.ViewsReset)
	assert.Equal(t, 35, res.ViewsAdded)
	assert.Equal(t, "standard", res.PackageType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPackagePayment_NewSubscriptionCustomAmount(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "user_subscriptions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectExec(`DELETE FROM "profile_views"`).WillReturnResult(testutil.Affected(0))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{
		"custom_field_1": userID.String(),
		"amount":         float64(14000),
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 60, res.ViewsAdded)
	assert.Equal(t, "custom", res.PackageType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPackagePayment_AddOn(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "views_remaining", "subscription_type"}).
			AddRow(uuid.NewString(), userID.String(), 12, "premium"))
	mock.ExpectExec(`UPDATE "user_subscriptions"`).WillReturnResult(testutil.Affected(1))
	mock.ExpectExec(`DELETE FROM "profile_views"`).WillReturnResult(testutil.Affected(2))
	mock.ExpectExec(`UPDATE "user_subscriptions" SET "verified_badge"`).WillReturnResult(testutil.Affected(1))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{
		"user_id": userID.String(),
		"amount":  "2000",
		"addon":   "verified_badge",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.AddOnApplied)
	assert.Equal(t, 0, res.ViewsAdded)
	assert.Equal(t, "add_on", res.PackageType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPackagePayment_LedgerFailureReportedPerStep(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewPaymentService(db, nil)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "payfast_transactions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnError(errors.New("insert failed"))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "user_subscriptions"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
	mock.ExpectExec(`DELETE FROM "profile_views"`).WillReturnResult(testutil.Affected(0))

	res, err := svc.ProcessPackagePayment(context.Background(), payfast.Payload{"user_id": userID.String(), "amount": "5000"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.PaymentStored)
	assert.True(t, res.SubscriptionUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
