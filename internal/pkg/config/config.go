package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AppPort     string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// AdminAPIKey protects the /admin surface. Vendors never see it.
	AdminAPIKey string `env:"ADMIN_API_KEY,required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`

	// Defaults applied to newly registered vendors.
	DefaultProductLimit int `env:"DEFAULT_PRODUCT_LIMIT" envDefault:"5"`
	DefaultEditLimit    int `env:"DEFAULT_EDIT_LIMIT" envDefault:"5"`
	DefaultDeleteLimit  int `env:"DEFAULT_DELETE_LIMIT" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// .env file is optional, mainly for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
