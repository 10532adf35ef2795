// Package config centralizes how the client reads environment variables and
// exposes them as strongly typed Go values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config represents runtime configuration for the client. The two base URLs
// are deliberately independent: authentication and meeting processing are
// separate services, and nothing may assume they share a backend.
type Config struct {
	AuthBaseURL string
	APIBaseURL  string
	StateDir    string
	HTTPTimeout time.Duration
}

const (
	defaultAuthBaseURL = "http://localhost:5000/api"
	defaultAPIBaseURL  = "http://localhost:8000"
	defaultHTTPTimeout = 30 * time.Second
	defaultStateSubdir = "meetingmind"
)

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is the common case outside development; continue with
		// whatever the environment already holds.
		Logger.Debugf("no .env file loaded: %v", err)
	}
	cfg := &Config{
		AuthBaseURL: readEnv("MEETINGMIND_AUTH_URL", defaultAuthBaseURL),
		APIBaseURL:  readEnv("MEETINGMIND_API_URL", defaultAPIBaseURL),
		StateDir:    readEnv("MEETINGMIND_STATE_DIR", defaultStateDir()),
		HTTPTimeout: parseDuration("MEETINGMIND_HTTP_TIMEOUT", defaultHTTPTimeout),
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	return cfg, nil
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

// defaultStateDir places session state under the user config directory,
// falling back to a dotdir in the working directory when the platform gives
// us nothing better.
func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, defaultStateSubdir)
	}
	return "." + defaultStateSubdir
}
