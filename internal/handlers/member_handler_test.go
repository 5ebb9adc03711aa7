package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// asMember stands in for the JWT middleware.
func asMember(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(session.UserKey, &jwt.Token{Claims: jwt.MapClaims{"sub": userID}})
		}
		return c.Next()
	}
}

func memberApp(db *gorm.DB, userID string) *fiber.App {
	h := NewProfileHandler(services.NewProfileService(db, services.NewContentFilter()))

	app := fiber.New()
	me := app.Group("/api/me", asMember(userID))
	me.Get("/profile", h.GetProfile)
	me.Put("/profile", h.UpdateProfile)
	me.Get("/subscription", h.GetSubscription)
	return app
}

func TestProfileHandler_Unauthorized(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	resp, _ := doRequest(t, memberApp(db, ""), httptest.NewRequest(http.MethodGet, "/api/me/profile", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfileHandler(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	userID := uuid.NewString()
	app := memberApp(db, userID)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "full_name", "city"}).AddRow(uuid.NewString(), userID, "Bilal", "Multan"))
	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/me/profile", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bilal", decode(t, body)["full_name"])

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	resp, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/me/profile", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("contact details in about are rejected", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		resp, body := doRequest(t, memberApp(db, uuid.NewString()),
			jsonRequest(http.MethodPut, "/api/me/profile", `{"about":"call me on 0300-1234567"}`))
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, string(body))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid gender", func(t *testing.T) {
		db, _ := testutil.NewMockDB(t)
		resp, _ := doRequest(t, memberApp(db, uuid.NewString()),
			jsonRequest(http.MethodPut, "/api/me/profile", `{"gender":"unknown"}`))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("applies partial update", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		userID := uuid.NewString()
		mock.ExpectQuery(`SELECT \* FROM "profiles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "full_name", "city"}).AddRow(uuid.NewString(), userID, "Bilal", "Multan"))
		mock.ExpectExec(`UPDATE "profiles" SET`).WillReturnResult(testutil.Affected(1))
		mock.ExpectQuery(`SELECT \* FROM "profiles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "full_name", "city", "is_published"}).AddRow(uuid.NewString(), userID, "Bilal", "Lahore", true))

		resp, body := doRequest(t, memberApp(db, userID),
			jsonRequest(http.MethodPut, "/api/me/profile", `{"city":" Lahore ","is_published":true}`))
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
		out := decode(t, body)
		assert.Equal(t, "Lahore", out["city"])
		assert.Equal(t, true, out["is_published"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetSubscriptionHandler_Default(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	userID := uuid.NewString()
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, body := doRequest(t, memberApp(db, userID), httptest.NewRequest(http.MethodGet, "/api/me/subscription", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, body)
	assert.Equal(t, userID, out["user_id"])
	assert.Equal(t, float64(0), out["views_remaining"])
	assert.Equal(t, "basic", out["subscription_type"])
}

func TestSyncHandler(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	h := NewSubscriptionHandler(services.NewSyncService(db))
	app := fiber.New()
	app.Post("/api/subscriptions/sync", h.Sync)

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/subscriptions/sync?user_id=42", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	mock.ExpectQuery(`SELECT .* FROM "payments"`).WillReturnError(errors.New("timeout"))
	resp, _ = doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/subscriptions/sync", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	mock.ExpectQuery(`SELECT .* FROM "payments"`).WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "views_credited", "package_type", "created_at"}))
	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/subscriptions/sync", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode(t, body)
	assert.Equal(t, float64(0), out["processed"])
	assert.Equal(t, float64(0), out["updated"])
}

type stubNotifier struct{ err error }

func (n stubNotifier) Notify(context.Context, string, string) error { return n.err }

func TestContactHandler(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		h := NewContactHandler(services.NewContactService(db, nil))
		app := fiber.New()
		app.Post("/api/contact", h.Submit)

		resp, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/contact", `{"name":"Hina","email":"nope","message":"hi"}`))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored and notified", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		h := NewContactHandler(services.NewContactService(db, stubNotifier{}))
		app := fiber.New()
		app.Post("/api/contact", h.Submit)

		mock.ExpectQuery(`INSERT INTO "contact_messages"`).WillReturnRows(testutil.IDRows(uuid.NewString()))
		mock.ExpectExec(`UPDATE "contact_messages"`).WillReturnResult(testutil.Affected(1))

		resp, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/contact",
			`{"name":"Hina","email":"hina@example.com","message":"Do you arrange events in Quetta?"}`))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
		assert.Equal(t, true, decode(t, body)["notified"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("notification failure still succeeds", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		h := NewContactHandler(services.NewContactService(db, stubNotifier{err: errors.New("smtp down")}))
		app := fiber.New()
		app.Post("/api/contact", h.Submit)

		mock.ExpectQuery(`INSERT INTO "contact_messages"`).WillReturnRows(testutil.IDRows(uuid.NewString()))

		resp, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/contact",
			`{"name":"Hina","email":"hina@example.com","message":"Hello"}`))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, false, decode(t, body)["notified"])
	})
}

func TestHealthHandler(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	app := fiber.New()
	app.Get("/api/health", NewHealthHandler(db).Check)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode(t, body)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "ok", out["db"])
}
