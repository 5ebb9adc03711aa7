package middleware

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// AdminHeader carries {"id": ..., "email": ...} of the signed-in admin.
const AdminHeader = "admin-auth"

// AdminRequired accepts a request when the admin-auth identity matches both
// the configured id list and the configured email list. The header is an
// identity claim, not a credential, so deployments keep these routes behind
// the site's own admin login.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(strings.ToLower(cfg.AdminEmails))
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		identity, ok := ParseAdminHeader(c.Get(AdminHeader))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !contains(adminUserIDs, identity.ID) || !contains(adminEmails, identity.Email) {
			slog.Warn("admin access denied", "user_id", identity.ID, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		c.Locals(session.AdminKey, identity)
		return c.Next()
	}
}

// ParseAdminHeader decodes the header value. The email is normalized to
// lower case; both fields must be present.
func ParseAdminHeader(raw string) (dto.AdminIdentity, bool) {
	var id dto.AdminIdentity
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return id, false
	}
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return id, false
	}
	id.ID = strings.TrimSpace(id.ID)
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	if id.ID == "" || id.Email == "" {
		return id, false
	}
	return id, true
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
