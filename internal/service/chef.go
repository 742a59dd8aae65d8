package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/types"
)

// ChefService handles chef operations
type ChefService struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewChefService creates a new ChefService instance
func NewChefService(db *gorm.DB, timeout time.Duration) *ChefService {
	return &ChefService{db: db, timeout: timeout}
}

// ListChefs returns every chef ordered by id.
func (s *ChefService) ListChefs(ctx context.Context) ([]*models.Chef, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	var chefs []*models.Chef
	if err := db.Order("id").Find(&chefs).Error; err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}
	return chefs, nil
}

// GetChef retrieves a chef by ID
func (s *ChefService) GetChef(ctx context.Context, id uint) (*models.Chef, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()
	return findChef(db, id)
}

// UpdateChef changes a chef's name fields. Chefs may only update themselves.
func (s *ChefService) UpdateChef(ctx context.Context, actorID, id uint, req *types.UpdateChefRequest) (*models.Chef, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	chef, err := findChef(db, id)
	if err != nil {
		return nil, err
	}
	if actorID != chef.ID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		updates["surname"] = strings.TrimSpace(*req.Surname)
	}
	if len(updates) == 0 {
		return chef, nil
	}

	if err := db.Model(chef).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update chef: %w", err)
	}
	return findChef(db, id)
}

// DeleteChef removes a chef that owns no recipes.
func (s *ChefService) DeleteChef(ctx context.Context, actorID, id uint) error {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	chef, err := findChef(db, id)
	if err != nil {
		return err
	}
	if actorID != chef.ID {
		return ErrForbidden
	}

	var owned int64
	if err := db.Model(&models.Recipe{}).Where("chef_id = ?", id).Count(&owned).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if owned > 0 {
		return ErrChefHasRecipes
	}

	if err := db.Delete(&models.Chef{}, id).Error; err != nil {
		// A recipe inserted after the count trips the RESTRICT foreign key.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrChefHasRecipes
		}
		if db.Model(&models.Recipe{}).Where("chef_id = ?", id).Count(&owned).Error == nil && owned > 0 {
			return ErrChefHasRecipes
		}
		return fmt.Errorf("failed to delete chef: %w", err)
	}
	return nil
}

func findChef(db *gorm.DB, id uint) (*models.Chef, error) {
	var chef models.Chef
	if err := db.First(&chef, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}
	return &chef, nil
}
