package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the dashboard backend needs. Values
// come from app.env in the given path, overridden by real environment
// variables.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	// Remote telemetry feeds, one per role-specific endpoint.
	FleetFeedURL   string `mapstructure:"FLEET_FEED_URL"`
	DriverFeedURL  string `mapstructure:"DRIVER_FEED_URL"`
	ShipperFeedURL string `mapstructure:"SHIPPER_FEED_URL"`

	// Live-feed simulation cadence.
	RotateInterval  time.Duration `mapstructure:"ROTATE_INTERVAL"`
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`
	FetchTimeout    time.Duration `mapstructure:"FETCH_TIMEOUT"`

	// Outbound email (booking confirmations, assistance dispatch).
	EmailEnabled bool   `mapstructure:"EMAIL_ENABLED"`
	SESRegion    string `mapstructure:"SES_REGION"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
}

// LoadConfig reads configuration from app.env in the given directory and
// from the environment, then fills in defaults for anything unset.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment may carry everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "truckpro-dev-secret"
	}
	if cfg.RotateInterval <= 0 {
		cfg.RotateInterval = 10 * time.Second
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 2 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return cfg, nil
}
