package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/internal/middleware"
	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/types"
)

// MaxImageSize bounds the body of an image upload.
const MaxImageSize = 10 << 20

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipes     service.IRecipeService
	images      service.IImageService
	auth        middleware.TokenValidator
	voteLimiter middleware.Limiter
	log         logrus.FieldLogger
}

// NewRecipeHandler creates a new RecipeHandler. A nil voteLimiter leaves votes unlimited.
func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService, auth middleware.TokenValidator, voteLimiter middleware.Limiter, log logrus.FieldLogger) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		images:      images,
		auth:        auth,
		voteLimiter: voteLimiter,
		log:         log,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		protected := recipes.Group("")
		protected.Use(middleware.AuthMiddleware(h.auth))
		protected.POST("", h.CreateRecipe)
		protected.PUT("/:id", h.UpdateRecipe)
		protected.DELETE("/:id", h.DeleteRecipe)
		protected.POST("/:id/image", h.UploadImage)

		votes := protected.Group("")
		if h.voteLimiter != nil {
			votes.Use(middleware.RateLimit(h.voteLimiter, h.log))
		}
		votes.POST("/:id/like", h.Like)
		votes.POST("/:id/dislike", h.Dislike)
	}
}

// ListRecipes lists recipes, filtered by ?chef_id and ?q.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter types.RecipeFilter
	if raw := c.Query("chef_id"); raw != "" {
		chefID, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || chefID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef_id"})
			return
		}
		id := uint(chefID)
		filter.ChefID = &id
	}
	filter.Query = c.Query("q")

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipesResponse{Recipes: recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	chefID, _ := middleware.ChefID(c)

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), chefID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	chefID, _ := middleware.ChefID(c)

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), chefID, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	chefID, _ := middleware.ChefID(c)

	if err := h.recipes.DeleteRecipe(c.Request.Context(), chefID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Like(c *gin.Context) {
	h.vote(c, h.recipes.Like)
}

func (h *RecipeHandler) Dislike(c *gin.Context) {
	h.vote(c, h.recipes.Dislike)
}

func (h *RecipeHandler) vote(c *gin.Context, apply func(ctx context.Context, id uint) (*models.Recipe, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UploadImage stores the multipart "image" field and sets it as the recipe's image.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	chefID, _ := middleware.ChefID(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize)
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large", "limit_bytes": tooLarge.Limit})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "message": err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), chefID, id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
