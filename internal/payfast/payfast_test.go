package payfast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadAliases(t *testing.T) {
	p := Payload{
		"userId":             "5b0c6f1e-3a57-4d47-9b0c-1f2d3e4a5b6c",
		"transaction_amount": "8000.00",
		"pf_payment_id":      "PF-1",
		"custom_field_2":     "verified_badge",
		"basket_id":          "REG-20261016-ABC123",
	}
	assert.Equal(t, "5b0c6f1e-3a57-4d47-9b0c-1f2d3e4a5b6c", p.UserID())
	assert.Equal(t, "8000.00", p.Amount())
	assert.Equal(t, "PF-1", p.TransactionID())
	assert.Equal(t, "verified_badge", p.AddOn())
	assert.Equal(t, "REG-20261016-ABC123", p.RegistrationID())
}

func TestPayloadSkipsBlankValues(t *testing.T) {
	p := Payload{"user_id": "  ", "userId": "abc", "amount": "", "txnamt": json.Number("13000")}
	assert.Equal(t, "abc", p.UserID())
	assert.Equal(t, json.Number("13000"), p.Amount())
	assert.Equal(t, "", p.TransactionID())
}

func TestPayloadStringNumbers(t *testing.T) {
	p := Payload{"amount": float64(8000)}
	assert.Equal(t, "8000", p.String("amount"))
}

func TestCheckHash(t *testing.T) {
	p := Payload{"basket_id": "B1", "err_code": "000"}
	_, ok := CheckHash(p, "secret", "102")
	assert.False(t, ok, "no hash in payload")

	p["validation_hash"] = ValidationHash("B1", "secret", "102", "000")
	valid, ok := CheckHash(p, "secret", "102")
	assert.True(t, ok)
	assert.True(t, valid)

	p["validation_hash"] = strings.Repeat("0", 64)
	valid, ok = CheckHash(p, "secret", "102")
	assert.True(t, ok)
	assert.False(t, valid)
}

func TestAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "102", r.PostForm.Get("MERCHANT_ID"))
		assert.Equal(t, "B1", r.PostForm.Get("BASKET_ID"))
		assert.Equal(t, "8000.00", r.PostForm.Get("TXNAMT"))
		assert.Equal(t, "PKR", r.PostForm.Get("CURRENCY_CODE"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"MERCHANT_ID":"102","ACCESS_TOKEN":"tok-123"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{MerchantID: "102", SecuredKey: "k", TokenURL: srv.URL, Currency: "PKR"})
	tok, err := c.AccessToken(context.Background(), "B1", decimal.NewFromInt(8000))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestAccessTokenGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid merchant"))
	}))
	defer srv.Close()

	c := NewClient(Config{MerchantID: "102", SecuredKey: "k", TokenURL: srv.URL})
	_, err := c.AccessToken(context.Background(), "B1", decimal.NewFromInt(1))
	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusUnauthorized, gwErr.Status)
	assert.Equal(t, "invalid merchant", gwErr.Body)
}

func TestAccessTokenNotConfigured(t *testing.T) {
	_, err := NewClient(Config{}).AccessToken(context.Background(), "B1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCheckoutPage(t *testing.T) {
	c := NewClient(Config{MerchantID: "102", SecuredKey: "k", CheckoutURL: "https://pay.example/checkout", Currency: "PKR"})
	fields := c.CheckoutFields("tok", Order{
		BasketID: "B1",
		Amount:   decimal.NewFromInt(8000),
		Extra:    []string{"user-1"},
	}, time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))

	assert.Equal(t, "8000.00", fields["TXNAMT"])
	assert.Equal(t, "2026-10-16 09:30:00", fields["ORDER_DATE"])
	assert.Equal(t, "user-1", fields["CUSTOM_FIELD_1"])

	page, err := c.CheckoutPage(fields)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, `action="https://pay.example/checkout"`)
	assert.Contains(t, html, `name="TOKEN" value="tok"`)
	assert.Contains(t, html, "document.forms[0].submit()")
}
