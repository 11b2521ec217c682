// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	GitHubToken    string   // process-wide fallback credential for search calls
	SecretKey      []byte   // 32-byte AES key for stored access tokens; nil disables reads
	SessionSecret  string   // HMAC secret for session cookie verification; empty disables sessions
	AllowedOrigins []string // CORS origins for the external frontend
}

// HasFallbackToken returns true when a process-wide GitHub token is
// configured. Its absence is valid: searches then run anonymously against the
// API's unauthenticated rate limit.
func (c *Config) HasFallbackToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated
// Config. A .env file in the working directory is honored when present.
// Everything is optional with defaults except HACKTOBERFEST_SECRET_KEY, which
// must decode to exactly 32 bytes when set. Variables:
// HACKTOBERFEST_LISTEN_ADDR (127.0.0.1:8080), HACKTOBERFEST_DB_PATH
// (hacktoberfest.db), HACKTOBERFEST_GITHUB_TOKEN, HACKTOBERFEST_SECRET_KEY,
// HACKTOBERFEST_SESSION_SECRET, HACKTOBERFEST_ALLOWED_ORIGINS.
func Load() (*Config, error) {
	// .env is a development convenience; container deployments set real env
	// vars, so a missing file is not an error.
	_ = godotenv.Load()

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("HACKTOBERFEST_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "hacktoberfest.db"
	if v, ok := os.LookupEnv("HACKTOBERFEST_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v := os.Getenv("HACKTOBERFEST_SECRET_KEY"); v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("HACKTOBERFEST_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("HACKTOBERFEST_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(decoded))
		}
		secretKey = decoded
	}

	allowedOrigins := []string{"*"}
	if v, ok := os.LookupEnv("HACKTOBERFEST_ALLOWED_ORIGINS"); ok && v != "" {
		allowedOrigins = allowedOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
		if len(allowedOrigins) == 0 {
			allowedOrigins = []string{"*"}
		}
	}

	return &Config{
		ListenAddr:     listenAddr,
		DBPath:         dbPath,
		GitHubToken:    os.Getenv("HACKTOBERFEST_GITHUB_TOKEN"),
		SecretKey:      secretKey,
		SessionSecret:  os.Getenv("HACKTOBERFEST_SESSION_SECRET"),
		AllowedOrigins: allowedOrigins,
	}, nil
}
