// Package config provides configuration management for the Diamond Sim application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Feed          FeedConfig          `mapstructure:"feed" validate:"required"`
	Prediction    PredictionConfig    `mapstructure:"prediction" validate:"required"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Features      FeaturesConfig      `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
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

// FeedConfig represents the sports data feed configuration. The REST
// API supplies schedules, lineups and season stats; the stream URL is
// the websocket endpoint for live lineup updates.
type FeedConfig struct {
	APIURL             string `mapstructure:"api_url" validate:"required,url"`
	StreamURL          string `mapstructure:"stream_url"`
	APIKey             string `mapstructure:"api_key"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts      int    `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond int    `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
}

// PredictionConfig carries the tunable engine settings. Zero values
// mean "use the built-in default"; only set what you want to override.
type PredictionConfig struct {
	Iterations             int     `mapstructure:"iterations" validate:"gte=0"`
	Workers                int     `mapstructure:"workers" validate:"gte=0"`
	Season                 int     `mapstructure:"season" validate:"required,gte=2000"`
	HomeFieldMultiplier    float64 `mapstructure:"home_field_multiplier" validate:"gte=0"`
	ProjectedLineupPenalty float64 `mapstructure:"projected_lineup_penalty" validate:"gte=0,lte=1"`
	WinProbFloor           float64 `mapstructure:"win_prob_floor" validate:"gte=0,lte=1"`
	WinProbCeiling         float64 `mapstructure:"win_prob_ceiling" validate:"gte=0,lte=1"`
	SnapshotCacheTTL       int     `mapstructure:"snapshot_cache_ttl_seconds" validate:"gte=0"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents ingestion and prediction scheduling.
// Both fields are cron expressions in robfig/cron syntax.
type ScheduleConfig struct {
	NightlySync     string `mapstructure:"nightly_sync" validate:"required"`
	PredictionSweep string `mapstructure:"prediction_sweep" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	LineupStreamEnabled  bool `mapstructure:"lineup_stream_enabled"`
	WeatherEnabled       bool `mapstructure:"weather_enabled"`
	SnapshotCacheEnabled bool `mapstructure:"snapshot_cache_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
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

// FeedTimeout returns the configured feed request timeout as a duration
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSeconds) * time.Second
}

// SnapshotCacheTTL returns the snapshot cache TTL, defaulting to five minutes
func (c *Config) SnapshotCacheTTL() time.Duration {
	if c.Prediction.SnapshotCacheTTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Prediction.SnapshotCacheTTL) * time.Second
}
