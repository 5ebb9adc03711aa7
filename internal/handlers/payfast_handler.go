package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/packages"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayFastHandler struct {
	payments *services.PaymentService
	client   *payfast.Client
	siteName string
	now      func() time.Time
}

func NewPayFastHandler(payments *services.PaymentService, client *payfast.Client, siteName string) *PayFastHandler {
	return &PayFastHandler{payments: payments, client: client, siteName: siteName, now: time.Now}
}

// PackageCallback applies a package purchase. The gateway notifies with a
// POST; the browser redirect arrives as a GET with the same fields.
func (h *PayFastHandler) PackageCallback(c *fiber.Ctx) error {
	p, err := payloadFrom(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.payments.ProcessPackagePayment(c.UserContext(), p)
	if errors.Is(err, services.ErrInvalidUserID) {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to process payment")
	}
	return c.JSON(res)
}

// Checkout starts a package or add-on purchase and returns the page that
// forwards the customer to PayFast.
func (h *PayFastHandler) Checkout(c *fiber.Ctx) error {
	p, err := payloadFrom(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(p.UserID())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "A valid user_id is required")
	}

	addOn := packages.NormalizeAddOn(p.AddOn())
	var amount decimal.Decimal
	description := h.siteName + " membership"
	if addOn != "" {
		amount, _ = packages.AddOnPrice(addOn)
		description = h.siteName + " " + addOn
	} else {
		parsed := packages.ParseAmount(p.Amount())
		pkg := packages.Resolve(parsed, "")
		if pkg.Views == 0 {
			return errorJSON(c, fiber.StatusBadRequest, "Amount does not match any package")
		}
		amount = *parsed
		description = h.siteName + " " + pkg.Tier + " package"
	}

	now := h.now()
	order := payfast.Order{
		BasketID:    services.NewTransactionID(now),
		Amount:      amount,
		Description: description,
		Email:       p.String("email"),
		Mobile:      p.String("phone", "mobile"),
		Extra:       []string{userID.String(), addOn},
	}
	return renderCheckout(c, h.client, order, now)
}

// renderCheckout exchanges the access token and writes the redirect page.
// Gateway failures are shown with the gateway's own answer.
func renderCheckout(c *fiber.Ctx, client *payfast.Client, order payfast.Order, now time.Time) error {
	token, err := client.AccessToken(c.UserContext(), order.BasketID, order.Amount)
	if err != nil {
		slog.Error("payfast token exchange failed", "action", "payfast_token", "basket_id", order.BasketID, "error", err)
		var gwErr *payfast.GatewayError
		switch {
		case errors.Is(err, payfast.ErrNotConfigured):
			return errorJSON(c, fiber.StatusServiceUnavailable, "Online payments are not available")
		case errors.As(err, &gwErr):
			return errorJSON(c, fiber.StatusBadGateway, gwErr.Body)
		default:
			return errorJSON(c, fiber.StatusBadGateway, err.Error())
		}
	}

	page, err := client.CheckoutPage(client.CheckoutFields(token, order, now))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to render checkout")
	}
	return c.Type("html").Send(page)
}
