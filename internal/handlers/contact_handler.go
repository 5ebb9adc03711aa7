package handlers

import (
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contact *services.ContactService
}

func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := h.contact.Submit(c.UserContext(), &req)
	if handled, herr := validationError(c, err); handled {
		return herr
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"error":    false,
		"message":  "Thank you, we will get back to you soon.",
		"id":       msg.ID,
		"notified": msg.Notified,
	})
}
