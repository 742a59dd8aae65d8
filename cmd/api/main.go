package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/app"
	"github.com/pageza/recipenest/backend/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run starts the API and blocks until it stops. It returns the process exit code.
func run() int {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
		return 1
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"env":    cfg.Env,
		"addr":   cfg.Addr(),
		"driver": cfg.Database.Driver,
	}).Info("Starting RecipeNest API")

	if cfg.JWTSecretFromDefault {
		log.Warn("JWT_SECRET is not set, signing tokens with the built-in default key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to start application")
		return 1
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- a.Start()
	}()

	code := 0
	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Error("Server error")
			code = 1
		}
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown error")
		return 1
	}
	log.Info("Server stopped")
	return code
}
