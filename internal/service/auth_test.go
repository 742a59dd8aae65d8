package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/testhelpers"
	"github.com/pageza/recipenest/backend/internal/types"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *service.AuthService) {
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewAuthService(db, testhelpers.AuthConfig(), 5*time.Second)
}

func TestRegisterAndLogin(t *testing.T) {
	_, authSvc := setupAuthTest(t)
	ctx := context.Background()

	chef, err := authSvc.Register(ctx, &types.RegisterRequest{
		Name:     "Julia",
		Surname:  "Child",
		Email:    " Julia@Example.com ",
		Password: "bon-appetit",
	})
	require.NoError(t, err)
	assert.NotZero(t, chef.ID)
	assert.Equal(t, "julia@example.com", chef.Email)
	assert.NotEqual(t, "bon-appetit", chef.PasswordHash)

	loggedIn, err := authSvc.Login(ctx, "julia@example.com", "bon-appetit")
	require.NoError(t, err)
	assert.Equal(t, chef.ID, loggedIn.ID)

	_, err = authSvc.Login(ctx, "julia@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "nobody@example.com", "bon-appetit")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	testhelpers.CreateTestChef(t, db, "dup@example.com")

	_, err := authSvc.Register(context.Background(), &types.RegisterRequest{
		Name: "A", Surname: "B", Email: "dup@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestSeededChefCannotLogin(t *testing.T) {
	db, authSvc := setupAuthTest(t)
	require.NoError(t, db.Create(&models.Chef{
		Name: "Default Chef", Surname: "Smith", Email: "chef@example.com", PasswordHash: "hashedpassword",
	}).Error)

	_, err := authSvc.Login(context.Background(), "chef@example.com", "hashedpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	_, authSvc := setupAuthTest(t)

	token, err := authSvc.GenerateToken(&models.Chef{ID: 7, Email: "seven@example.com"})
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ChefID)
	assert.Equal(t, "seven@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "RecipeNestAPI", claims.Issuer)
}

func TestValidateTokenRejections(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	base := testhelpers.AuthConfig()
	validator := service.NewAuthService(db, base, time.Second)
	chef := &models.Chef{ID: 1, Email: "a@example.com"}

	issue := func(cfg config.AuthConfig) string {
		token, err := service.NewAuthService(db, cfg, time.Second).GenerateToken(chef)
		require.NoError(t, err)
		return token
	}

	otherIssuer := base
	otherIssuer.Issuer = "SomeoneElse"

	otherAudience := base
	otherAudience.Audience = "OtherFrontend"

	otherSecret := base
	otherSecret.Secret = "another-secret"

	expired := base
	expired.TokenTTL = -time.Minute

	tests := []struct {
		name  string
		token string
	}{
		{"wrong issuer", issue(otherIssuer)},
		{"wrong audience", issue(otherAudience)},
		{"wrong signing key", issue(otherSecret)},
		{"expired", issue(expired)},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := validator.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateTokenRejectsOtherSigningMethod(t *testing.T) {
	_, authSvc := setupAuthTest(t)
	cfg := testhelpers.AuthConfig()

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ChefID: 1,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(token)
	assert.Error(t, err)
}
