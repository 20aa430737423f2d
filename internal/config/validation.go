package config

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs validations that span multiple fields
func validateCrossField(cfg *Config) error {
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("database.max_idle_connections (%d) cannot exceed database.max_connections (%d)",
			cfg.Database.MaxIdleConnections, cfg.Database.MaxConnections)
	}

	if cfg.OddsAPI.PrimaryBook != "" && len(cfg.OddsAPI.Bookmakers) > 0 {
		if !slices.Contains(cfg.OddsAPI.Bookmakers, cfg.OddsAPI.PrimaryBook) {
			return fmt.Errorf("odds_api.primary_book %q is not in odds_api.bookmakers", cfg.OddsAPI.PrimaryBook)
		}
	}

	if cfg.Prediction.RecentWindow > 18 {
		return fmt.Errorf("prediction.recent_window (%d) cannot exceed the number of weeks in a season", cfg.Prediction.RecentWindow)
	}

	return nil
}

// formatValidationErrors formats validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, err := range errs {
		msg += fmt.Sprintf("\n  - field %q failed rule %q", err.Namespace(), err.Tag())
	}
	return fmt.Errorf("%s", msg)
}
