package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is used when neither JWT_SECRET nor the jwt_secret secret is set.
// Anything deployed with it accepts tokens minted by whoever has read this file.
const DefaultJWTSecret = "YourSuperSecretKey1234567890!@#$%"

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://your-netlify-app.netlify.app",
}

// Config holds all configuration for the application. It is built once by
// LoadConfig and handed to the components that need it.
type Config struct {
	Env Environment

	// Server configuration
	ServerHost string
	ServerPort string

	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig

	// Redis configuration; empty disables the shared limiter
	RedisURL string

	// S3 configuration; empty bucket disables image uploads
	S3Bucket  string
	AWSRegion string

	LogLevel  string
	LogFormat string

	// JWTSecretFromDefault is set when the fallback signing key is in use.
	JWTSecretFromDefault bool
}

// DatabaseConfig describes how to reach the relational store.
type DatabaseConfig struct {
	Driver         string
	Path           string
	URL            string
	BusyTimeout    time.Duration
	CommandTimeout time.Duration
	MaxOpenConns   int
}

// AuthConfig holds bearer-token parameters.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// CORSConfig holds the origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig bounds how often a chef may vote on recipes.
type RateLimitConfig struct {
	VoteLimit  int
	VoteWindow time.Duration
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{
		Env:        env,
		ServerHost: os.Getenv("SERVER_HOST"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		RedisURL:   os.Getenv("REDIS_URL"),
		S3Bucket:   os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:  os.Getenv("AWS_REGION"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if env == Production {
		cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	} else {
		cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	}

	var err error
	if cfg.Database, err = loadDatabaseConfig(); err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	if cfg.Auth, err = loadAuthConfig(); err != nil {
		return nil, fmt.Errorf("failed to load auth configuration: %w", err)
	}
	cfg.JWTSecretFromDefault = cfg.Auth.Secret == DefaultJWTSecret

	cfg.CORS = CORSConfig{AllowedOrigins: defaultAllowedOrigins}
	if origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}

	if cfg.RateLimit, err = loadRateLimitConfig(); err != nil {
		return nil, fmt.Errorf("failed to load rate limit configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	db := DatabaseConfig{
		Driver: getEnv("DB_DRIVER", "sqlite"),
		Path:   getEnv("DB_PATH", "recipenest.db"),
		URL:    os.Getenv("DATABASE_URL"),
	}

	var err error
	if db.BusyTimeout, err = getDuration("DB_BUSY_TIMEOUT", 5*time.Second); err != nil {
		return db, err
	}
	if db.CommandTimeout, err = getDuration("DB_COMMAND_TIMEOUT", 60*time.Second); err != nil {
		return db, err
	}
	if db.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 4); err != nil {
		return db, err
	}
	return db, nil
}

func loadAuthConfig() (AuthConfig, error) {
	auth := AuthConfig{
		Secret:   os.Getenv("JWT_SECRET"),
		Issuer:   getEnv("JWT_ISSUER", "RecipeNestAPI"),
		Audience: getEnv("JWT_AUDIENCE", "RecipeNestFrontend"),
	}
	if auth.Secret == "" {
		auth.Secret = readSecret("jwt_secret")
	}
	if auth.Secret == "" {
		auth.Secret = DefaultJWTSecret
	}

	var err error
	if auth.TokenTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return auth, err
	}
	return auth, nil
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	var rl RateLimitConfig
	var err error
	if rl.VoteLimit, err = getInt("VOTE_RATE_LIMIT", 30); err != nil {
		return rl, err
	}
	if rl.VoteWindow, err = getDuration("VOTE_RATE_WINDOW", time.Minute); err != nil {
		return rl, err
	}
	return rl, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", v)}
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
