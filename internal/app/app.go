package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/api"
	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/middleware"
	"github.com/pageza/recipenest/backend/internal/server"
	"github.com/pageza/recipenest/backend/internal/service"
)

// App owns the process-wide resources of the API: the database, the
// optional Redis client and the HTTP server.
type App struct {
	cfg    *config.Config
	log    logrus.FieldLogger
	db     *gorm.DB
	redis  *redis.Client
	server *server.Server
}

// New opens the database, brings the schema up to date, seeds it once, and
// wires the HTTP server. Nothing listens until Start is called; on any
// initialization error the opened resources are released and the error is
// returned.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{cfg: cfg, log: log, db: db}

	result, err := database.Initialize(ctx, db, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.WithFields(logrus.Fields{
		"chefs_inserted":   result.ChefsInserted,
		"recipes_inserted": result.RecipesInserted,
	}).Info("Database ready")

	timeout := cfg.Database.CommandTimeout
	auth := service.NewAuthService(db, cfg.Auth, timeout)
	recipes := service.NewRecipeService(db, timeout)

	svc := api.Services{
		Auth:    auth,
		Chefs:   service.NewChefService(db, timeout),
		Recipes: recipes,
		Images:  service.NewImageService(a.imageStore(ctx), recipes, log),
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	svc.VoteLimiter = a.voteLimiter(ctx)

	a.server = server.New(cfg, svc, log)
	return a, nil
}

// voteLimiter prefers a shared Redis limiter and falls back to an
// in-process one when Redis is not configured or unreachable.
func (a *App) voteLimiter(ctx context.Context) middleware.Limiter {
	limits := middleware.RateLimitConfig{
		Window:    a.cfg.RateLimit.VoteWindow,
		Limit:     a.cfg.RateLimit.VoteLimit,
		KeyPrefix: "rate_limit:votes",
	}

	if a.cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, a.cfg.RedisURL, a.log)
		if err == nil {
			a.redis = client
			return middleware.NewRedisLimiter(client, limits)
		}
		a.log.WithError(err).Warn("Redis unavailable, limiting votes in process")
	}
	return middleware.NewLocalLimiter(limits)
}

// imageStore returns nil when uploads are not configured.
func (a *App) imageStore(ctx context.Context) service.ImageStore {
	if a.cfg.S3Bucket == "" {
		a.log.Info("S3_BUCKET_NAME not set, recipe image uploads disabled")
		return nil
	}
	store, err := config.NewS3Config(ctx, a.cfg)
	if err != nil {
		a.log.WithError(err).Warn("Recipe image uploads disabled")
		return nil
	}
	return store
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// DB returns the application's database handle.
func (a *App) DB() *gorm.DB {
	return a.db
}

// Start serves HTTP on the configured address until Shutdown.
func (a *App) Start() error {
	return a.server.Start()
}

// Serve serves HTTP on ln until Shutdown.
func (a *App) Serve(ln net.Listener) error {
	return a.server.Serve(ln)
}

// Shutdown stops the HTTP server and releases the database and Redis.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if err := database.Close(a.db); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}
