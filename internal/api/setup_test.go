package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/internal/api"
	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/logging"
	"github.com/pageza/recipenest/backend/internal/middleware"
	"github.com/pageza/recipenest/backend/internal/mocks"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/testhelpers"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	store  *mocks.MockImageStore
}

type envOption func(*api.Services)

func withVoteLimit(limit int) envOption {
	return func(s *api.Services) {
		s.VoteLimiter = middleware.NewLocalLimiter(middleware.RateLimitConfig{Window: time.Hour, Limit: limit})
	}
}

func withoutImageStore(s *api.Services) {
	s.Images = service.NewImageService(nil, s.Recipes, logging.Discard())
}

func setupTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	log := logging.Discard()

	auth := service.NewAuthService(db, testhelpers.AuthConfig(), 5*time.Second)
	recipes := service.NewRecipeService(db, 5*time.Second)
	store := &mocks.MockImageStore{}

	svc := api.Services{
		Auth:    auth,
		Chefs:   service.NewChefService(db, 5*time.Second),
		Recipes: recipes,
		Images:  service.NewImageService(store, recipes, log),
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	for _, opt := range opts {
		opt(&svc)
	}

	router := gin.New()
	api.RegisterRoutes(router, svc, log)

	return &testEnv{router: router, db: db, auth: auth, store: store}
}

// chefWithToken creates a chef and signs a token for it.
func (e *testEnv) chefWithToken(t *testing.T, email string) (*models.Chef, string) {
	t.Helper()
	chef := testhelpers.CreateTestChef(t, e.db, email)
	token, err := e.auth.GenerateToken(chef)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return chef, token
}
