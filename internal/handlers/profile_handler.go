package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the signed-in member's own records.
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	p, err := h.profiles.Get(c.UserContext(), userID)
	if errors.Is(err, services.ErrProfileNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Profile not found")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return c.JSON(p)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	p, err := h.profiles.Update(c.UserContext(), userID, &req)
	if handled, herr := validationError(c, err); handled {
		return herr
	}
	switch {
	case errors.Is(err, services.ErrContentRejected):
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Profile not found")
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(p)
}

func (h *ProfileHandler) GetSubscription(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	sub, err := h.profiles.Subscription(c.UserContext(), userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load subscription")
	}
	return c.JSON(sub)
}
