package server

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from CALTRACK_-prefixed environment variables, with a
// local .env file honored for development.
type Config struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"3000"`
	DBPath   string `envconfig:"DB_PATH" default:""`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("CALTRACK", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment config: %w", err)
	}
	return cfg, nil
}
