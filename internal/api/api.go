package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/internal/middleware"
	"github.com/pageza/recipenest/backend/internal/service"
)

// Services bundles what the HTTP layer needs. VoteLimiter may be nil.
type Services struct {
	Auth        service.IAuthService
	Chefs       service.IChefService
	Recipes     service.IRecipeService
	Images      service.IImageService
	VoteLimiter middleware.Limiter
	Ping        Pinger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, log logrus.FieldLogger) {
	health := NewHealthHandler(svc.Ping, log)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth, log).RegisterRoutes(v1)
	NewChefHandler(svc.Chefs, svc.Recipes, svc.Auth, log).RegisterRoutes(v1)
	NewRecipeHandler(svc.Recipes, svc.Images, svc.Auth, svc.VoteLimiter, log).RegisterRoutes(v1)
}
