package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var settingTypes = map[string]bool{"string": true, "bool": true, "int": true, "json": true}

// SettingsHandler manages the public site settings (banner text, event
// details, helpline).
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings returns every setting with its value converted to its type.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.load(c.UserContext())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to fetch settings")
	}

	result := make(map[string]interface{}, len(settings))
	for _, s := range settings {
		result[s.Key] = typedValue(s)
	}
	return c.JSON(result)
}

// Raw returns the settings as plain strings.
func (h *SettingsHandler) Raw(ctx context.Context) (map[string]string, error) {
	settings, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}

func (h *SettingsHandler) load(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := h.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func typedValue(s models.SiteSetting) interface{} {
	switch s.Type {
	case "bool":
		v, _ := strconv.ParseBool(s.Value)
		return v
	case "int":
		v, _ := strconv.Atoi(s.Value)
		return v
	case "json":
		var v interface{}
		if err := json.Unmarshal([]byte(s.Value), &v); err != nil {
			return s.Value
		}
		return v
	}
	return s.Value
}

// SetSetting creates or updates a key (admin only).
func (h *SettingsHandler) SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Key parameter is required")
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if payload.Type == "" {
		payload.Type = "string"
	}
	if !settingTypes[payload.Type] {
		return errorJSON(c, fiber.StatusBadRequest, "type must be one of: string, bool, int, json")
	}
	if err := checkSettingValue(payload.Type, payload.Value); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	db := h.db.WithContext(c.UserContext())
	var setting models.SiteSetting
	err := db.Where("key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SiteSetting{Key: key, Value: payload.Value, Type: payload.Type}
		if err := db.Create(&setting).Error; err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, "Failed to create setting")
		}
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to query setting")
	default:
		if err := db.Model(&setting).Updates(map[string]interface{}{
			"value": payload.Value,
			"type":  payload.Type,
		}).Error; err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, "Failed to update setting")
		}
		setting.Value, setting.Type = payload.Value, payload.Type
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Setting saved",
		"setting": fiber.Map{
			"key":   setting.Key,
			"value": typedValue(setting),
			"type":  setting.Type,
		},
	})
}

func checkSettingValue(typ, value string) error {
	switch typ {
	case "bool":
		if _, err := strconv.ParseBool(value); err != nil {
			return errors.New("value must be true or false")
		}
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return errors.New("value must be an integer")
		}
	case "json":
		if !json.Valid([]byte(value)) {
			return errors.New("value must be valid JSON")
		}
	}
	return nil
}

// DeleteSetting removes a key (admin only).
func (h *SettingsHandler) DeleteSetting(c *fiber.Ctx) error {
	result := h.db.WithContext(c.UserContext()).Where("key = ?", c.Params("key")).Delete(&models.SiteSetting{})
	if result.Error != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete setting")
	}
	if result.RowsAffected == 0 {
		return errorJSON(c, fiber.StatusNotFound, "Setting not found")
	}
	return c.JSON(fiber.Map{"error": false, "message": "Setting deleted"})
}
