// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Application
	DefaultMaxDistance  float64 `mapstructure:"DEFAULT_MAX_DISTANCE"`
	DefaultDistanceUnit string  `mapstructure:"DEFAULT_DISTANCE_UNIT"`
	FeedAdInterval      int     `mapstructure:"FEED_AD_INTERVAL"`
	AdminEmails         string  `mapstructure:"ADMIN_EMAILS"`

	// Image storage
	ImageStoragePath   string `mapstructure:"IMAGE_STORAGE_PATH"`
	ImagePublicBaseURL string `mapstructure:"IMAGE_PUBLIC_BASE_URL"`

	// Cron jobs
	PlacementSweepSchedule string `mapstructure:"PLACEMENT_SWEEP_SCHEDULE"`

	// Firebase
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
}

// AdminEmailSet returns the allowlisted admin emails, lowercased.
func (c *Config) AdminEmailSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range strings.Split(c.AdminEmails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "uslocal_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DEFAULT_MAX_DISTANCE", 50)
	v.SetDefault("DEFAULT_DISTANCE_UNIT", "miles")
	v.SetDefault("FEED_AD_INTERVAL", 6)
	v.SetDefault("ADMIN_EMAILS", "")

	v.SetDefault("IMAGE_STORAGE_PATH", "./images")
	v.SetDefault("IMAGE_PUBLIC_BASE_URL", "http://localhost:8080/images")

	v.SetDefault("PLACEMENT_SWEEP_SCHEDULE", "@hourly")

	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute

	// GORM wants the param-based DSN regardless of what DB_SOURCE (used by migrate) holds.
	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)

	if unit := strings.ToLower(cfg.DefaultDistanceUnit); unit != "miles" && unit != "km" {
		return nil, fmt.Errorf("DEFAULT_DISTANCE_UNIT must be 'miles' or 'km', got %q", cfg.DefaultDistanceUnit)
	}
	if cfg.FeedAdInterval <= 0 {
		return nil, fmt.Errorf("FEED_AD_INTERVAL must be positive, got %d", cfg.FeedAdInterval)
	}

	if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set; it is required for Firebase Admin SDK initialization")
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase service account key file %s not found", cfg.FirebaseServiceAccountKeyPath)
	}

	return &cfg, nil
}
