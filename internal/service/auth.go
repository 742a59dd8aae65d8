package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/types"
)

type AuthService struct {
	db      *gorm.DB
	cfg     config.AuthConfig
	timeout time.Duration
	now     func() time.Time
}

func NewAuthService(db *gorm.DB, cfg config.AuthConfig, timeout time.Duration) *AuthService {
	return &AuthService{
		db:      db,
		cfg:     cfg,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.Chef, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	email := normalizeEmail(req.Email)

	// Check if chef already exists
	var count int64
	if err := db.Model(&models.Chef{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	chef := &models.Chef{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(chef).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create chef: %w", err)
	}

	return chef, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Chef, error) {
	db, cancel := database.WithTimeout(ctx, s.db, s.timeout)
	defer cancel()

	var chef models.Chef
	if err := db.Where("email = ?", normalizeEmail(email)).First(&chef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up chef: %w", err)
	}

	// Seeded chefs carry a placeholder hash that never matches.
	if err := bcrypt.CompareHashAndPassword([]byte(chef.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &chef, nil
}

// GenerateToken issues a signed bearer token for chef.
func (s *AuthService) GenerateToken(chef *models.Chef) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			Subject:   strconv.FormatUint(uint64(chef.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		ChefID: chef.ID,
		Email:  chef.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken checks signature, issuer, audience and lifetime.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ChefID == 0 {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
