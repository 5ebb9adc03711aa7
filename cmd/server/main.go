package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/payfast"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/seo"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.SupabaseJWTSecret == "" {
		slog.Error("SUPABASE_JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" && cfg.DBPassword == "" {
		slog.Error("DATABASE_URL or DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.AdminUserIDs == "" || cfg.AdminEmails == "" {
		slog.Warn("ADMIN_USER_IDS or ADMIN_EMAILS is empty, admin routes will reject every request")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Outbound integrations
	payfastClient := payfast.NewClient(payfast.Config{
		MerchantID:   cfg.PayFastMerchantID,
		SecuredKey:   cfg.PayFastSecuredKey,
		MerchantName: cfg.PayFastMerchantName,
		TokenURL:     cfg.PayFastTokenURL,
		CheckoutURL:  cfg.PayFastCheckoutURL,
		SuccessURL:   cfg.PayFastSuccessURL,
		FailureURL:   cfg.PayFastFailureURL,
		CallbackURL:  cfg.PayFastCallbackURL,
		Currency:     cfg.PayFastCurrency,
		Timeout:      cfg.PayFastTimeout,
	})
	if !cfg.PayFastEnabled() {
		slog.Warn("PayFast credentials missing, checkout is disabled")
	}

	var store services.ObjectStore
	if cfg.StorageEnabled() {
		s3Store, err := storage.NewS3Store(context.Background(), storage.Config{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			slog.Error("storage init failed", "error", err)
			os.Exit(1)
		}
		store = s3Store
	} else {
		slog.Warn("object storage not configured, image uploads are disabled")
	}

	var notifier services.Notifier
	if cfg.SMTPEnabled() {
		notifier = mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			To:       cfg.NotifyEmail,
		})
	}

	// Services
	paymentService := services.NewPaymentService(database.DB, payfastClient)
	registrationService := services.NewRegistrationService(database.DB, payfastClient)
	syncService := services.NewSyncService(database.DB)
	imageService := services.NewImageService(database.DB, store, cfg.MaxImageSizeBytes)
	adminService := services.NewAdminService(database.DB, store)
	profileService := services.NewProfileService(database.DB, services.NewContentFilter())
	contactService := services.NewContactService(database.DB, notifier)

	// Handlers
	settingsHandler := handlers.NewSettingsHandler(database.DB)
	h := routes.Handlers{
		Health:   handlers.NewHealthHandler(database.DB),
		Legal:    handlers.NewLegalHandler(cfg.SiteName, cfg.NotifyEmail),
		Settings: settingsHandler,
		Content: handlers.NewContentHandler(settingsHandler, seo.Builder{
			SiteName: cfg.SiteName,
			SiteURL:  cfg.SiteURL,
			Currency: cfg.PayFastCurrency,
		}),
		Contact:      handlers.NewContactHandler(contactService),
		PayFast:      handlers.NewPayFastHandler(paymentService, payfastClient, cfg.SiteName),
		Registration: handlers.NewRegistrationHandler(registrationService, payfastClient, cfg.PayFastEventURL, cfg.SiteName),
		Subscription: handlers.NewSubscriptionHandler(syncService),
		Admin:        handlers.NewAdminHandler(adminService, imageService),
		Profile:      handlers.NewProfileHandler(profileService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "request_id", c.Locals("requestid"), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
