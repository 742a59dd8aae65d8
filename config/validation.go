package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 0 || port > 65535 {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	errors = append(errors, databaseErrors(cfg.Database)...)

	if cfg.Auth.Secret == "" {
		errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "must not be empty"}.Error())
	}
	if cfg.Auth.Issuer == "" || cfg.Auth.Audience == "" {
		errors = append(errors, ValidationError{Field: "JWT_ISSUER/JWT_AUDIENCE", Message: "must not be empty"}.Error())
	}
	if cfg.Auth.TokenTTL <= 0 {
		errors = append(errors, ValidationError{Field: "JWT_TTL", Message: "must be positive"}.Error())
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		errors = append(errors, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "at least one origin is required"}.Error())
	}
	for _, origin := range cfg.CORS.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: fmt.Sprintf("invalid origin %q", origin)}.Error())
		}
	}

	if cfg.RateLimit.VoteLimit <= 0 || cfg.RateLimit.VoteWindow <= 0 {
		errors = append(errors, ValidationError{Field: "VOTE_RATE_LIMIT/VOTE_RATE_WINDOW", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

// ValidateDatabaseConfig checks only the database settings.
func ValidateDatabaseConfig(db DatabaseConfig) error {
	if errors := databaseErrors(db); len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}

func databaseErrors(db DatabaseConfig) []string {
	var errors []string

	switch db.Driver {
	case "sqlite":
		if db.Path == "" {
			errors = append(errors, ValidationError{Field: "DB_PATH", Message: "required for sqlite"}.Error())
		}
	case "postgres":
		if db.URL == "" {
			errors = append(errors, ValidationError{Field: "DATABASE_URL", Message: "required for postgres"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", db.Driver)}.Error())
	}

	if db.CommandTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "DB_COMMAND_TIMEOUT", Message: "must be positive"}.Error())
	}
	if db.MaxOpenConns <= 0 {
		errors = append(errors, ValidationError{Field: "DB_MAX_OPEN_CONNS", Message: "must be positive"}.Error())
	}

	return errors
}
