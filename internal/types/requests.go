package types

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Surname  string `json:"surname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateChefRequest carries the fields a chef may change on their own record.
type UpdateChefRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Surname *string `json:"surname" binding:"omitempty,min=1,max=100"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"omitempty,max=1024"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,max=1024"`
}

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	ChefID *uint
	Query  string
}
