package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/internal/models"
	"github.com/pageza/recipenest/backend/internal/service"
	"github.com/pageza/recipenest/backend/internal/types"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth service.IAuthService
	log  logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.IAuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// Register creates a chef account and returns it with a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	chef, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, chef)
}

// Login checks credentials and returns the chef with a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	chef, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, chef)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, chef *models.Chef) {
	token, err := h.auth.GenerateToken(chef)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(status, types.AuthResponse{Chef: chef, Token: token})
}
