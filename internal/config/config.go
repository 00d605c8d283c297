package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	// Validation rules, adjustable per deployment.
	MinUsernameLen int
	MinPasswordLen int
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/tasknest?parseTime=true"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      7 * 24 * time.Hour,
		MinUsernameLen: getIntEnv("MIN_USERNAME_LENGTH", 3),
		MinPasswordLen: getIntEnv("MIN_PASSWORD_LENGTH", 6),
	}

	// No fallback secret. Refuse to start without a signing key.
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
