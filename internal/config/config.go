// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens. Must be set outside local development.
	JWTSecret string

	// TokenTTL is how long a session stays valid.
	TokenTTL time.Duration

	// CORSOrigins is the list of allowed browser origins.
	CORSOrigins []string

	// PermissionsPath optionally points at a JSON role/capability override
	// file. Empty means the built-in policy.
	PermissionsPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	cfg := &Config{
		Port:            8080,
		DBPath:          getEnv("DB_PATH", "./data/mergemoney.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:        24 * time.Hour,
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PermissionsPath: os.Getenv("PERMISSIONS_PATH"),
	}

	if port := os.Getenv("PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.Port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
