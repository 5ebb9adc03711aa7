// Package payfast talks to the PayFast hosted checkout: it exchanges merchant
// credentials for a one-time access token and renders the auto-submitting
// form that hands the customer over to the gateway.
package payfast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotConfigured = errors.New("payfast is not configured")
	ErrNoToken       = errors.New("payfast returned no access token")
)

// GatewayError carries the gateway's raw answer so it can be shown to the
// customer, as the checkout pages do.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payfast token request failed: status %d: %s", e.Status, e.Body)
}

type Config struct {
	MerchantID   string
	SecuredKey   string
	MerchantName string
	TokenURL     string
	CheckoutURL  string
	SuccessURL   string
	FailureURL   string
	CallbackURL  string
	Currency     string
	Timeout      time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
}

func (c *Client) IsConfigured() bool {
	return c.cfg.MerchantID != "" && c.cfg.SecuredKey != ""
}

func (c *Client) MerchantID() string { return c.cfg.MerchantID }
func (c *Client) SecuredKey() string { return c.cfg.SecuredKey }

type tokenResponse struct {
	MerchantID  string `json:"MERCHANT_ID"`
	AccessToken string `json:"ACCESS_TOKEN"`
	Code        string `json:"CODE"`
	Message     string `json:"MESSAGE"`
}

// AccessToken requests a token bound to basketID and amount.
func (c *Client) AccessToken(ctx context.Context, basketID string, amount decimal.Decimal) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("MERCHANT_ID", c.cfg.MerchantID)
	form.Set("SECURED_KEY", c.cfg.SecuredKey)
	form.Set("BASKET_ID", basketID)
	form.Set("TXNAMT", amount.StringFixed(2))
	form.Set("CURRENCY_CODE", c.cfg.Currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "rishta-backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payfast token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode != http.StatusOK {
		return "", &GatewayError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &GatewayError{Status: resp.StatusCode, Body: string(body)}
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: %s", ErrNoToken, string(body))
	}
	return tr.AccessToken, nil
}

// Order describes what the customer is about to pay for.
type Order struct {
	BasketID    string
	Amount      decimal.Decimal
	Description string
	Email       string
	Mobile      string
	// CallbackURL overrides the configured server-to-server callback.
	CallbackURL string
	// Extra is echoed back by the gateway in custom_field_N.
	Extra []string
}

// CheckoutFields returns the form fields PayFast expects on the hosted
// checkout POST.
func (c *Client) CheckoutFields(token string, o Order, now time.Time) map[string]string {
	fields := map[string]string{
		"MERCHANT_ID":            c.cfg.MerchantID,
		"MERCHANT_NAME":          c.cfg.MerchantName,
		"TOKEN":                  token,
		"PROCCODE":               "00",
		"TXNAMT":                 o.Amount.StringFixed(2),
		"CURRENCY_CODE":          c.cfg.Currency,
		"CUSTOMER_MOBILE_NO":     o.Mobile,
		"CUSTOMER_EMAIL_ADDRESS": o.Email,
		"SIGNATURE":              uuid.NewString(),
		"VERSION":                "MERCHANT-CART-0.1",
		"TXNDESC":                o.Description,
		"SUCCESS_URL":            c.cfg.SuccessURL,
		"FAILURE_URL":            c.cfg.FailureURL,
		"BASKET_ID":              o.BasketID,
		"ORDER_DATE":             now.Format("2006-01-02 15:04:05"),
		"CHECKOUT_URL":           c.cfg.CallbackURL,
	}
	if o.CallbackURL != "" {
		fields["CHECKOUT_URL"] = o.CallbackURL
	}
	for i, v := range o.Extra {
		fields[fmt.Sprintf("CUSTOM_FIELD_%d", i+1)] = v
	}
	return fields
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Redirecting to PayFast</title></head>
<body onload="document.forms[0].submit()">
<p>Redirecting to the payment page&hellip;</p>
<form method="POST" action="{{.Action}}">
{{range $k, $v := .Fields}}<input type="hidden" name="{{$k}}" value="{{$v}}">
{{end}}<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body></html>`))

// CheckoutPage renders the auto-submitting form.
func (c *Client) CheckoutPage(fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	err := checkoutPage.Execute(&buf, struct {
		Action string
		Fields map[string]string
	}{Action: c.cfg.CheckoutURL, Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("render checkout page: %w", err)
	}
	return buf.Bytes(), nil
}
