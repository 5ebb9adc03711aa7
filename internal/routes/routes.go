package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Legal        *handlers.LegalHandler
	Settings     *handlers.SettingsHandler
	Content      *handlers.ContentHandler
	Contact      *handlers.ContactHandler
	PayFast      *handlers.PayFastHandler
	Registration *handlers.RegistrationHandler
	Subscription *handlers.SubscriptionHandler
	Admin        *handlers.AdminHandler
	Profile      *handlers.ProfileHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Public content
	api.Get("/settings", h.Settings.GetSettings)
	api.Get("/packages", h.Content.Packages)
	api.Get("/seo/:page", h.Content.SEO)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Form posts get a stricter limit: 10 req/min per IP
	forms := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/contact", forms, h.Contact.Submit)

	// PayFast: checkout redirect and callbacks (no auth, the gateway calls these)
	api.Post("/payfast/checkout", forms, h.PayFast.Checkout)
	api.Post("/payfast/success", h.PayFast.PackageCallback)
	api.Get("/payfast/success", h.PayFast.PackageCallback)

	// Event registrations
	api.Post("/event-registrations", forms, h.Registration.Create)
	api.Post("/event-registrations/payfast-success", h.Registration.PaymentCallback)
	api.Get("/event-registrations/payfast-success", h.Registration.PaymentCallback)
	api.Get("/event-registrations/:id", h.Registration.Get)
	api.Post("/event-registrations/:id/checkout", h.Registration.Checkout)

	// Member routes (Supabase JWT)
	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/profile", h.Profile.GetProfile)
	me.Put("/profile", h.Profile.UpdateProfile)
	me.Get("/subscription", h.Profile.GetSubscription)

	// Admin routes (admin-auth header)
	adminOnly := middleware.AdminRequired(cfg)
	api.Post("/subscriptions/sync", adminOnly, h.Subscription.Sync)
	api.Get("/subscriptions/sync", adminOnly, h.Subscription.Sync)

	admin := api.Group("/admin", adminOnly)
	admin.Post("/profile/create", h.Admin.CreateProfile)
	admin.Post("/profile/upload-image", h.Admin.UploadImage)
	admin.Get("/profile/upload-image", h.Admin.ListImages)
	admin.Delete("/profile/upload-image", h.Admin.DeleteImage)
	admin.Delete("/profile/delete", h.Admin.DeleteUser)
	admin.Post("/profile/delete", h.Admin.DeleteUser)
	admin.Put("/settings/:key", h.Settings.SetSetting)
	admin.Delete("/settings/:key", h.Settings.DeleteSetting)
}
