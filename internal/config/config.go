package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration, loaded from the
// environment with an optional .env overlay for local development.
type Config struct {
	Host string
	Port int

	// JWTSecret signs issued tokens
	JWTSecret string

	// BcryptCost is the password hashing cost (0 = library default)
	BcryptCost int

	// TokenTTL bounds token validity
	TokenTTL time.Duration

	// StorageType selects the backend ("memory" or "redis")
	StorageType string
	RedisURL    string

	// Dev enables verbose error detail; never set in production
	Dev bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present but never overrides
// variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:        getEnv("HOST", ""),
		Port:        getEnvInt("PORT", 8080),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BcryptCost:  getEnvInt("BCRYPT_COST", 0),
		TokenTTL:    getEnvDuration("TOKEN_TTL", time.Hour),
		StorageType: getEnv("STORAGE_TYPE", "memory"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		Dev:         os.Getenv("DEV") == "true",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
