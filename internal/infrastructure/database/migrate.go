package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.Consumer{},
		&model.Vendor{},
		&model.Shop{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.DeliveryOption{},
		&model.Payment{},
		&model.Wallet{},
		&model.WalletTransfer{},
		&model.Earning{},
		&model.TransferRecipient{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// createCustomIndexes creates indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Settlement resolves payments by the gateway reference on every
	// webhook delivery.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_init_reference ON payments (init_reference) WHERE init_reference IS NOT NULL`).Error; err != nil {
		return err
	}

	// Pending payments are periodically swept for reconciliation.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments (created_at) WHERE status = 'pending'`).Error; err != nil {
		return err
	}

	return nil
}
