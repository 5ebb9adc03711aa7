package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
		// Supabase's transaction pooler does not support prepared statements.
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// AllModels lists every table the service owns.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.ProfileImage{},
		&models.UserSubscription{},
		&models.ProfileView{},
		&models.Interaction{},
		&models.Payment{},
		&models.PayFastTransaction{},
		&models.EventRegistration{},
		&models.ContactMessage{},
		&models.SiteSetting{},
		&models.SystemLog{},
	}
}

// Migrate runs AutoMigrate. Production schemas are managed in Supabase, so
// this is only called when AUTO_MIGRATE is set.
func Migrate() error {
	return DB.AutoMigrate(AllModels()...)
}

// Ping checks db, or the global connection when db is nil.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		db = DB
	}
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
