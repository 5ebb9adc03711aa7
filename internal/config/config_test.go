package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PAYFAST_TIMEOUT", "not-a-duration")
	t.Setenv("MAX_IMAGE_SIZE_BYTES", "-5")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.PayFastTimeout)
	assert.Equal(t, int64(5<<20), cfg.MaxImageSizeBytes)
	assert.True(t, cfg.AutoMigrate)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.False(t, cfg.PayFastEnabled())
}

func TestDSNPrefersURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@h:5432/db", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@h:5432/db", cfg.DSN())
}

func TestFeatureToggles(t *testing.T) {
	cfg := &Config{PayFastMerchantID: "102", PayFastSecuredKey: "k", SMTPHost: "smtp", SMTPFrom: "a@b.pk"}
	assert.True(t, cfg.PayFastEnabled())
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.StorageEnabled())
}
