package service

import (
	"context"
	"errors"
	"io"

	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/types"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed to modify this resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrChefHasRecipes     = errors.New("chef still owns recipes")
	ErrInvalidImage       = errors.New("unsupported image type")
	ErrStorageDisabled    = errors.New("image storage is not configured")
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.Chef, error)
	Login(ctx context.Context, email, password string) (*models.Chef, error)
	GenerateToken(chef *models.Chef) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IChefService defines the interface for chef operations
type IChefService interface {
	ListChefs(ctx context.Context) ([]*models.Chef, error)
	GetChef(ctx context.Context, id uint) (*models.Chef, error)
	UpdateChef(ctx context.Context, actorID, id uint, req *types.UpdateChefRequest) (*models.Chef, error)
	DeleteChef(ctx context.Context, actorID, id uint) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*models.Recipe, error)
	ListChefRecipes(ctx context.Context, chefID uint) ([]*models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, chefID uint, req *types.CreateRecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, actorID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actorID, id uint) error
	Like(ctx context.Context, id uint) (*models.Recipe, error)
	Dislike(ctx context.Context, id uint) (*models.Recipe, error)
	SetImage(ctx context.Context, actorID, id uint, url string) (*models.Recipe, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, actorID, recipeID uint, filename, contentType string, body io.Reader) (*models.Recipe, error)
}

// ImageStore persists image bytes and returns a URL for them.
type ImageStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
