package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipenest/backend/internal/logging"
	"github.com/pageza/recipenest/backend/internal/mocks"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/testhelpers"
)

func TestUploadRecipeImage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	chef := testhelpers.CreateTestChef(t, db, "owner@example.com")
	other := testhelpers.CreateTestChef(t, db, "other@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, chef.ID, "Cake")
	recipes := service.NewRecipeService(db, 5*time.Second)
	ctx := context.Background()

	store := &mocks.MockImageStore{}
	store.On("PutObject", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipes/") && strings.HasSuffix(key, ".png")
	}), "image/png", "png-bytes").Return("https://bucket.s3.us-east-1.amazonaws.com/cake.png", nil).Once()

	svc := service.NewImageService(store, recipes, logging.Discard())

	updated, err := svc.UploadRecipeImage(ctx, chef.ID, recipe.ID, "cake.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/cake.png", updated.Image)
	store.AssertExpectations(t)

	_, err = svc.UploadRecipeImage(ctx, other.ID, recipe.ID, "cake.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.UploadRecipeImage(ctx, chef.ID, recipe.ID, "cake.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrInvalidImage)

	_, err = svc.UploadRecipeImage(ctx, chef.ID, 9999, "cake.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUploadRecipeImageStoreFailure(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	chef := testhelpers.CreateTestChef(t, db, "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, chef.ID, "Cake")

	store := &mocks.MockImageStore{}
	store.On("PutObject", mock.Anything, mock.Anything, "image/jpeg", "jpg").Return("", errors.New("s3 down"))

	svc := service.NewImageService(store, service.NewRecipeService(db, time.Second), logging.Discard())
	_, err := svc.UploadRecipeImage(context.Background(), chef.ID, recipe.ID, "c.jpg", "image/jpeg", strings.NewReader("jpg"))
	assert.Error(t, err)
}

func TestUploadRecipeImageWithoutStore(t *testing.T) {
	svc := service.NewImageService(nil, &mocks.MockRecipeService{}, logging.Discard())
	_, err := svc.UploadRecipeImage(context.Background(), 1, 1, "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}
