package handlers

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	registrations *services.RegistrationService
	client        *payfast.Client
	callbackURL   string
	siteName      string
}

func NewRegistrationHandler(registrations *services.RegistrationService, client *payfast.Client, callbackURL, siteName string) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		client:        client,
		callbackURL:   callbackURL,
		siteName:      siteName,
	}
}

func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := h.registrations.Create(c.UserContext(), &req)
	if handled, herr := validationError(c, err); handled {
		return herr
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to save registration")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *RegistrationHandler) Get(c *fiber.Ctx) error {
	reg, err := h.registrations.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrRegistrationNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Registration not found")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load registration")
	}
	return c.JSON(reg)
}

// Checkout sends the registrant to PayFast for the stored total.
func (h *RegistrationHandler) Checkout(c *fiber.Ctx) error {
	reg, err := h.registrations.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrRegistrationNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Registration not found")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load registration")
	}
	if reg.PaymentStatus == models.RegistrationPaid {
		return errorJSON(c, fiber.StatusConflict, "Registration is already paid")
	}

	order := payfast.Order{
		BasketID:    reg.RegistrationID,
		Amount:      reg.TotalAmount,
		Description: h.siteName + " event registration",
		Email:       reg.Email,
		Mobile:      reg.Phone,
		CallbackURL: h.callbackURL,
		Extra:       []string{reg.RegistrationID},
	}
	return renderCheckout(c, h.client, order, time.Now())
}

// PaymentCallback marks a registration paid. An unknown registration id still
// answers ok.
func (h *RegistrationHandler) PaymentCallback(c *fiber.Ctx) error {
	p, err := payloadFrom(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.registrations.MarkPaid(c.UserContext(), p.RegistrationID(), p)
	if errors.Is(err, services.ErrMissingRegistration) {
		return errorJSON(c, fiber.StatusBadRequest, "registration_id is required")
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":             false,
			"auditStored":    res != nil && res.AuditStored,
			"registrationId": p.RegistrationID(),
			"error":          "Failed to update registration",
		})
	}
	return c.JSON(res)
}
