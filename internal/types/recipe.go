package types

import (
	"github.com/pageza/recipenest/backend/internal/models"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Chef  *models.Chef `json:"chef"`
	Token string       `json:"token"`
}

// RecipesResponse wraps a recipe listing.
type RecipesResponse struct {
	Recipes []*models.Recipe `json:"recipes"`
}

// ChefsResponse wraps a chef listing.
type ChefsResponse struct {
	Chefs []*models.Chef `json:"chefs"`
}
