// Package config provides configuration management for the Gridiron Prophet application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	InjuryFeed InjuryFeedConfig `mapstructure:"injury_feed" validate:"required"`
	OddsAPI    OddsAPIConfig    `mapstructure:"odds_api" validate:"required"`
	Classifier ClassifierConfig `mapstructure:"classifier" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Sync       SyncConfig       `mapstructure:"sync" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Health     HealthConfig     `mapstructure:"health" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	Season      int    `mapstructure:"season" validate:"required,gte=2000"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// InjuryFeedConfig represents the injury report provider configuration
type InjuryFeedConfig struct {
	URL            string  `mapstructure:"url" validate:"required,url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// OddsAPIConfig represents the market-line provider configuration
type OddsAPIConfig struct {
	BaseURL        string   `mapstructure:"base_url" validate:"required,url"`
	APIKey         string   `mapstructure:"api_key" validate:"required"`
	Region         string   `mapstructure:"region" validate:"required"`
	Bookmakers     []string `mapstructure:"bookmakers"`
	PrimaryBook    string   `mapstructure:"primary_book"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int      `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64  `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// ClassifierConfig represents the win-probability classifier service configuration
type ClassifierConfig struct {
	HTTPAddress           string `mapstructure:"http_address" validate:"required"`
	ModelVersion          string `mapstructure:"model_version"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int    `mapstructure:"retry_attempts" validate:"gte=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// PredictionConfig represents margin model and edge thresholds
type PredictionConfig struct {
	RecentWindow       int     `mapstructure:"recent_window" validate:"required,gt=0"`
	PriorSeasons       int     `mapstructure:"prior_seasons" validate:"required,gt=0"`
	HomeFieldAdvantage float64 `mapstructure:"home_field_advantage" validate:"gte=0"`
	MinEdge            float64 `mapstructure:"min_edge" validate:"required,gt=0"`
	LeagueAvgPoints    float64 `mapstructure:"league_avg_points" validate:"required,gt=0"`
	MinImportance      float64 `mapstructure:"min_importance" validate:"gte=0,lte=1"`
}

// SyncConfig represents reconciliation and polling schedules
type SyncConfig struct {
	InjuryCron              string `mapstructure:"injury_cron" validate:"required"`
	RosterCron              string `mapstructure:"roster_cron" validate:"required"`
	LinePollIntervalSeconds int    `mapstructure:"line_poll_interval_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health endpoint configuration
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
