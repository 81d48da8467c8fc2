package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, populated from environment
// variables (a .env file is loaded by main before this runs).
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"App-Name"`
	Port    string `envconfig:"SERVER_PORT" default:"5600"`

	SessionSecret   string `envconfig:"SESSION_SECRET_KEY" required:"true"`
	SessionTTLHours int64  `envconfig:"SESSION_TTL_HOURS" default:"24"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
