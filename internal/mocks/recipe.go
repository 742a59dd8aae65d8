package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/types"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) recipes(args mock.Arguments) ([]*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error) {
	return m.recipes(m.Called(ctx, filter))
}

func (m *MockRecipeService) ListChefRecipes(ctx context.Context, chefID uint) ([]*models.Recipe, error) {
	return m.recipes(m.Called(ctx, chefID))
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, chefID uint, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, chefID, req))
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, actorID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, actorID, id, req))
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, actorID, id uint) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockRecipeService) Like(ctx context.Context, id uint) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) Dislike(ctx context.Context, id uint) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) SetImage(ctx context.Context, actorID, id uint, url string) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, actorID, id, url))
}
