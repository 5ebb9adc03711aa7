package handlers

import (
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	sync *services.SyncService
}

func NewSubscriptionHandler(sync *services.SyncService) *SubscriptionHandler {
	return &SubscriptionHandler{sync: sync}
}

// Sync rebuilds balances from the ledger, for everyone or for user_id.
func (h *SubscriptionHandler) Sync(c *fiber.Ctx) error {
	var userID *uuid.UUID
	if raw := param(c, "user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid user_id")
		}
		userID = &id
	}

	res, err := h.sync.Run(c.UserContext(), userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Subscription sync failed")
	}
	return c.JSON(res)
}
