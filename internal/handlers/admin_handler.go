package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	admin  *services.AdminService
	images *services.ImageService
}

func NewAdminHandler(admin *services.AdminService, images *services.ImageService) *AdminHandler {
	return &AdminHandler{admin: admin, images: images}
}

func (h *AdminHandler) CreateProfile(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := h.admin.CreateProfile(c.UserContext(), &req)
	if handled, herr := validationError(c, err); handled {
		return herr
	}
	if errors.Is(err, services.ErrEmailTaken) {
		return errorJSON(c, fiber.StatusConflict, "A user with this email already exists")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create profile")
	}

	if admin, ok := session.GetAdmin(c); ok {
		slog.Info("profile created by admin", "admin_id", admin.ID, "user_id", res.UserID.String())
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func userIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(param(c, "user_id"))
}

// UploadImage accepts a multipart "file" plus "user_id".
func (h *AdminHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "A valid user_id is required")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Could not read file")
	}
	defer f.Close()

	img, err := h.images.Upload(c.UserContext(), userID, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	switch {
	case errors.Is(err, services.ErrUnsupportedImage),
		errors.Is(err, services.ErrEmptyImage):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrImageTooLarge):
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, services.ErrStorageDisabled):
		return errorJSON(c, fiber.StatusServiceUnavailable, err.Error())
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to upload image")
	}
	return c.Status(fiber.StatusCreated).JSON(img)
}

func (h *AdminHandler) ListImages(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "A valid user_id is required")
	}
	images, err := h.images.List(c.UserContext(), userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list images")
	}
	return c.JSON(fiber.Map{"images": images})
}

func (h *AdminHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, err := uuid.Parse(param(c, "image_id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "A valid image_id is required")
	}

	err = h.images.Delete(c.UserContext(), imageID)
	switch {
	case errors.Is(err, services.ErrImageNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Image not found")
	case errors.Is(err, services.ErrStorageDisabled):
		return errorJSON(c, fiber.StatusServiceUnavailable, err.Error())
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete image")
	}
	return c.JSON(fiber.Map{"error": false, "message": "Image deleted"})
}

// DeleteUser runs the cascade and returns the per-step tally. Failed steps are
// reported in the body; the status stays 200.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "A valid user_id is required")
	}

	res := h.admin.DeleteUser(c.UserContext(), userID)
	if admin, ok := session.GetAdmin(c); ok {
		slog.Info("user deleted by admin", "admin_id", admin.ID, "user_id", userID.String(),
			"succeeded", res.Succeeded, "failed", res.Failed)
	}
	return c.JSON(res)
}
