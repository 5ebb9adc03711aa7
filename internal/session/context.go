// Package session reads the caller identity that middleware stored on the
// request context.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	UserKey  = "user"
	AdminKey = "admin"
)

// GetUserID extracts the member UUID from the Supabase JWT in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(UserKey).(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetAdmin returns the identity accepted by the admin middleware.
func GetAdmin(c *fiber.Ctx) (dto.AdminIdentity, bool) {
	id, ok := c.Locals(AdminKey).(dto.AdminIdentity)
	return id, ok
}
