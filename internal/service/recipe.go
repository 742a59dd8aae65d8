package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, timeout time.Duration) *RecipeService {
	return &RecipeService{db: db, timeout: timeout}
}

// ListRecipes lists recipes, optionally narrowed to one chef or a title/description match.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	query := db.Order("id")
	if filter.ChefID != nil {
		query = query.Where("chef_id = ?", *filter.ChefID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var recipes []*models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// ListChefRecipes returns the recipes owned by chefID, or ErrNotFound if the chef does not exist.
func (s *RecipeService) ListChefRecipes(ctx context.Context, chefID uint) ([]*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	if _, err := findChef(db, chefID); err != nil {
		return nil, err
	}

	var recipes []*models.Recipe
	if err := db.Where("chef_id = ?", chefID).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()
	return findRecipe(db, id)
}

// CreateRecipe creates a new recipe owned by chefID
func (s *RecipeService) CreateRecipe(ctx context.Context, chefID uint, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	if _, err := findChef(db, chefID); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       req.Image,
		ChefID:      chefID,
	}
	if err := db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// UpdateRecipe updates a recipe owned by actorID
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	recipe, err := findOwnedRecipe(db, actorID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return recipe, nil
	}

	if err := db.Model(recipe).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return findRecipe(db, id)
}

// DeleteRecipe deletes a recipe owned by actorID
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uint) error {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	if _, err := findOwnedRecipe(db, actorID, id); err != nil {
		return err
	}
	if err := db.Delete(&models.Recipe{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// Like increments the like counter.
func (s *RecipeService) Like(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.vote(ctx, id, "likes")
}

// Dislike increments the dislike counter.
func (s *RecipeService) Dislike(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.vote(ctx, id, "dislikes")
}

// SetImage records the image URL of a recipe owned by actorID.
func (s *RecipeService) SetImage(ctx context.Context, actorID, id uint, url string) (*models.Recipe, error) {
	return s.UpdateRecipe(ctx, actorID, id, &types.UpdateRecipeRequest{Image: &url})
}

// vote bumps column in a single UPDATE so concurrent votes are not lost.
func (s *RecipeService) vote(ctx context.Context, id uint, column string) (*models.Recipe, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	result := db.Model(&models.Recipe{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return findRecipe(db, id)
}

func findRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

func findOwnedRecipe(db *gorm.DB, actorID, id uint) (*models.Recipe, error) {
	recipe, err := findRecipe(db, id)
	if err != nil {
		return nil, err
	}
	if recipe.ChefID != actorID {
		return nil, ErrForbidden
	}
	return recipe, nil
}
