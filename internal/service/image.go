package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/internal/models"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService handles recipe image uploads
type ImageService struct {
	store   ImageStore
	recipes IRecipeService
	log     logrus.FieldLogger
}

// NewImageService creates a new ImageService. A nil store disables uploads.
func NewImageService(store ImageStore, recipes IRecipeService, log logrus.FieldLogger) *ImageService {
	return &ImageService{
		store:   store,
		recipes: recipes,
		log:     log,
	}
}

// UploadRecipeImage stores body and points the recipe's image at it. Only the
// owning chef may change a recipe's image.
func (s *ImageService) UploadRecipeImage(ctx context.Context, actorID, recipeID uint, filename, contentType string, body io.Reader) (*models.Recipe, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrInvalidImage
	}

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.ChefID != actorID {
		return nil, ErrForbidden
	}

	key := path.Join("recipes", fmt.Sprint(recipeID), uuid.NewString()+ext)
	url, err := s.store.PutObject(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"filename":  filename,
		"key":       key,
	}).Info("Stored recipe image")

	return s.recipes.SetImage(ctx, actorID, recipeID, url)
}
