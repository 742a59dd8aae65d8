package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	ChefID uint   `json:"chef_id"`
	Email  string `json:"email"`
}
