package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/internal/models"
)

// EnsureSchema creates the chefs and recipes tables if they are missing.
// Running it against an up-to-date schema is a no-op.
func EnsureSchema(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) error {
	log.WithField("dialect", db.Dialector.Name()).Info("Ensuring database schema")
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Initialize runs the one-time startup sequence: schema, then seed. Any
// failure is logged and returned so the caller can abort before serving.
func Initialize(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) (SeedResult, error) {
	if err := EnsureSchema(ctx, db, log); err != nil {
		log.WithError(err).Error("Failed to seed database.")
		return SeedResult{}, err
	}

	result, err := Seed(ctx, db, log)
	if err != nil {
		log.WithError(err).Error("Failed to seed database.")
		return result, err
	}
	return result, nil
}
