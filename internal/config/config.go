// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration parameters for the settlement service.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DBDriver selects the storage backend: "sqlite" or "postgres".
	DBDriver string

	// DBPath is the SQLite database file (sqlite driver only).
	DBPath string

	// DatabaseURL is the PostgreSQL connection string (postgres driver only).
	DatabaseURL string

	// JWTSecret is the shared secret the trip application signs tokens with.
	JWTSecret string
}

// Load reads configuration from the environment, loading a .env file first
// when one exists.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "./data/settlements.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	switch cfg.DBDriver {
	case "sqlite":
		// DBPath has a default.
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required with DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
