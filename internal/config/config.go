package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	// Supabase (member JWTs are signed with the project secret)
	SupabaseJWTSecret string

	// Admin
	AdminEmails  string
	AdminUserIDs string

	// PayFast
	PayFastMerchantID   string
	PayFastSecuredKey   string
	PayFastMerchantName string
	PayFastTokenURL     string
	PayFastCheckoutURL  string
	PayFastSuccessURL   string
	PayFastFailureURL   string
	PayFastCallbackURL  string
	PayFastEventURL     string
	PayFastCurrency     string
	PayFastTimeout      time.Duration

	// Object storage (Supabase Storage S3 endpoint)
	StorageEndpoint   string
	StorageRegion     string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StoragePublicURL  string
	MaxImageSizeBytes int64

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmail  string

	// Site
	SiteName string
	SiteURL  string

	// Server
	Port         string
	CORSOrigins  string
	BodyLimit    int
	LogRetention time.Duration

	SentryDSN string
	AppEnv    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "postgres"),
		DBSSLMode:   getEnv("DB_SSLMODE", "require"),
		AutoMigrate: parseBool(getEnv("AUTO_MIGRATE", "false")),

		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),

		PayFastMerchantID:   getEnv("PAYFAST_MERCHANT_ID", ""),
		PayFastSecuredKey:   getEnv("PAYFAST_SECURED_KEY", ""),
		PayFastMerchantName: getEnv("PAYFAST_MERCHANT_NAME", "Rishta Connect"),
		PayFastTokenURL:     getEnv("PAYFAST_TOKEN_URL", "https://ipguat.apps.net.pk/Ecommerce/api/Transaction/GetAccessToken"),
		PayFastCheckoutURL:  getEnv("PAYFAST_CHECKOUT_URL", "https://ipguat.apps.net.pk/Ecommerce/api/Transaction/PostTransaction"),
		PayFastSuccessURL:   getEnv("PAYFAST_SUCCESS_URL", "http://localhost:3000/payment/success"),
		PayFastFailureURL:   getEnv("PAYFAST_FAILURE_URL", "http://localhost:3000/payment/failure"),
		PayFastCallbackURL:  getEnv("PAYFAST_CALLBACK_URL", "http://localhost:8080/api/payfast/success"),
		PayFastEventURL:     getEnv("PAYFAST_EVENT_CALLBACK_URL", "http://localhost:8080/api/event-registrations/payfast-success"),
		PayFastCurrency:     getEnv("PAYFAST_CURRENCY", "PKR"),
		PayFastTimeout:      parseDuration(getEnv("PAYFAST_TIMEOUT", "15s"), 15*time.Second),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:     getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "profile-images"),
		StoragePublicURL:  getEnv("STORAGE_PUBLIC_URL", ""),
		MaxImageSizeBytes: parseInt64(getEnv("MAX_IMAGE_SIZE_BYTES", "5242880"), 5<<20),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		NotifyEmail:  getEnv("CONTACT_NOTIFY_EMAIL", ""),

		SiteName: getEnv("SITE_NAME", "Rishta Connect"),
		SiteURL:  getEnv("SITE_URL", "http://localhost:3000"),

		Port:         getEnv("PORT", "8080"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		BodyLimit:    int(parseInt64(getEnv("BODY_LIMIT_BYTES", "8388608"), 8<<20)),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the
// individual DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) PayFastEnabled() bool {
	return c.PayFastMerchantID != "" && c.PayFastSecuredKey != ""
}

func (c *Config) StorageEnabled() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != "" && c.NotifyEmail != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
