package config

import (
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. Secrets are only enforced in production so tests and local
// development can run against defaults.
func ValidateConfig(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return ValidationError{Field: "SERVER_PORT", Message: "must be a number"}
	}

	if !IsProduction() {
		return nil
	}

	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
	}
	if cfg.DBPassword == "" {
		return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
	}
	if cfg.OpenRouterAPIKey == "" {
		return ValidationError{Field: "OPENROUTER_API_KEY", Message: "required in production"}
	}

	return nil
}
