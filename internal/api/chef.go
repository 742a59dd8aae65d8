package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/internal/middleware"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/types"
)

// ChefHandler serves chef profiles and their recipe listings.
type ChefHandler struct {
	chefs   service.IChefService
	recipes service.IRecipeService
	auth    middleware.TokenValidator
	log     logrus.FieldLogger
}

// NewChefHandler creates a new ChefHandler
func NewChefHandler(chefs service.IChefService, recipes service.IRecipeService, auth middleware.TokenValidator, log logrus.FieldLogger) *ChefHandler {
	return &ChefHandler{chefs: chefs, recipes: recipes, auth: auth, log: log}
}

// RegisterRoutes registers the chef routes
func (h *ChefHandler) RegisterRoutes(router *gin.RouterGroup) {
	chefs := router.Group("/chefs")
	{
		chefs.GET("", h.ListChefs)
		chefs.GET("/:id", h.GetChef)
		chefs.GET("/:id/recipes", h.ListChefRecipes)

		protected := chefs.Group("")
		protected.Use(middleware.AuthMiddleware(h.auth))
		protected.PUT("/:id", h.UpdateChef)
		protected.DELETE("/:id", h.DeleteChef)
	}
}

func (h *ChefHandler) ListChefs(c *gin.Context) {
	chefs, err := h.chefs.ListChefs(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types.ChefsResponse{Chefs: chefs})
}

func (h *ChefHandler) GetChef(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	chef, err := h.chefs.GetChef(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chef)
}

func (h *ChefHandler) ListChefRecipes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipes, err := h.recipes.ListChefRecipes(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipesResponse{Recipes: recipes})
}

// UpdateChef lets a chef rename themselves.
func (h *ChefHandler) UpdateChef(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.ChefID(c)

	var req types.UpdateChefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	chef, err := h.chefs.UpdateChef(c.Request.Context(), actorID, id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chef)
}

// DeleteChef removes the caller's own account once it owns no recipes.
func (h *ChefHandler) DeleteChef(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.ChefID(c)

	if err := h.chefs.DeleteChef(c.Request.Context(), actorID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
