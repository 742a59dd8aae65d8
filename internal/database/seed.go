package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipenest/backend/internal/metrics"
	"github.com/pageza/recipenest/backend/internal/models"
)

// SeedResult reports how many rows a Seed call inserted.
type SeedResult struct {
	ChefsInserted   int
	RecipesInserted int
}

// DefaultChef is inserted when the chefs table is empty. The password hash is
// a placeholder, so this chef cannot log in.
func DefaultChef() models.Chef {
	return models.Chef{
		Name:         "Default Chef",
		Surname:      "Smith",
		Email:        "chef@example.com",
		PasswordHash: "hashedpassword",
		Rating:       0.0,
	}
}

// DefaultRecipes are inserted when the recipes table is empty.
func DefaultRecipes(chefID uint) []models.Recipe {
	return []models.Recipe{
		{ID: 11, Title: "Recipe 1", Description: "Delicious dish", Image: "", Likes: 0, Dislikes: 0, ChefID: chefID},
		{ID: 12, Title: "Recipe 2", Description: "Tasty treat", Image: "", Likes: 0, Dislikes: 0, ChefID: chefID},
	}
}

// Seed inserts the default chef and recipes into empty tables. Each table is
// checked independently; a non-empty table is never written to. All work
// happens in one transaction that is rolled back on any error.
func Seed(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) (SeedResult, error) {
	var result SeedResult

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chefCount int64
		if err := tx.Model(&models.Chef{}).Count(&chefCount).Error; err != nil {
			return fmt.Errorf("failed to count chefs: %w", err)
		}
		if chefCount == 0 {
			log.Info("Seeding database with initial chef...")
			chef := DefaultChef()
			if err := tx.Create(&chef).Error; err != nil {
				return fmt.Errorf("failed to seed chef: %w", err)
			}
			result.ChefsInserted = 1
			log.WithField("chef_id", chef.ID).Info("Chef seeded successfully.")
		}

		var recipeCount int64
		if err := tx.Model(&models.Recipe{}).Count(&recipeCount).Error; err != nil {
			return fmt.Errorf("failed to count recipes: %w", err)
		}
		if recipeCount == 0 {
			log.Info("Seeding database with initial recipes...")
			var owner models.Chef
			if err := tx.Order("id").First(&owner).Error; err != nil {
				return fmt.Errorf("failed to find chef for seed recipes: %w", err)
			}
			recipes := DefaultRecipes(owner.ID)
			if err := tx.Omit(clause.Associations).Create(&recipes).Error; err != nil {
				return fmt.Errorf("failed to seed recipes: %w", err)
			}
			if err := advanceRecipeSequence(tx); err != nil {
				return err
			}
			result.RecipesInserted = len(recipes)
			log.WithField("chef_id", owner.ID).Info("Database seeded successfully.")
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	metrics.SeedRowsInserted.WithLabelValues("chefs").Add(float64(result.ChefsInserted))
	metrics.SeedRowsInserted.WithLabelValues("recipes").Add(float64(result.RecipesInserted))
	return result, nil
}

// advanceRecipeSequence moves the PostgreSQL id sequence past the explicit
// seed ids. SQLite tracks this itself.
func advanceRecipeSequence(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	err := tx.Exec(`SELECT setval(pg_get_serial_sequence('recipes', 'id'), (SELECT MAX(id) FROM recipes))`).Error
	if err != nil {
		return fmt.Errorf("failed to advance recipe id sequence: %w", err)
	}
	return nil
}
