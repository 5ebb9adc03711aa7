package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/packages"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/seo"
	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves pricing data and structured data for the public pages.
type ContentHandler struct {
	settings *SettingsHandler
	seo      seo.Builder
}

func NewContentHandler(settings *SettingsHandler, builder seo.Builder) *ContentHandler {
	return &ContentHandler{settings: settings, seo: builder}
}

func (h *ContentHandler) Packages(c *fiber.Ctx) error {
	addOns := fiber.Map{}
	for _, name := range []string{packages.AddOnVerifiedBadge, packages.AddOnBoostProfile} {
		price, _ := packages.AddOnPrice(name)
		addOns[name] = price
	}
	return c.JSON(fiber.Map{
		"packages": packages.Catalog(),
		"addOns":   addOns,
		"custom": fiber.Map{
			"above":        packages.PremiumPrice,
			"pricePerView": packages.CustomStep,
		},
	})
}

func (h *ContentHandler) SEO(c *fiber.Ctx) error {
	settings, err := h.settings.Raw(c.UserContext())
	if err != nil {
		slog.Warn("seo: settings unavailable", "error", err)
	}

	doc, err := h.seo.Page(c.Params("page"), settings)
	if errors.Is(err, seo.ErrUnknownPage) {
		return errorJSON(c, fiber.StatusNotFound, "No structured data for this page")
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.JSON(doc, "application/ld+json")
}
