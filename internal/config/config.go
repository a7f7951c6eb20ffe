// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all runtime settings.
type Config struct {
	// ServiceURL is the question service root. Default: http://127.0.0.1:5000
	ServiceURL string

	// HTTPTimeout bounds each service request. Zero means no timeout.
	HTTPTimeout time.Duration

	// DBPath is the journal database. Empty selects the XDG data dir.
	DBPath string

	// Journal enables the attempt journal. Default: true.
	Journal bool

	// LogFile receives JSON logs. Empty disables logging.
	LogFile string

	// LogLevel is a zap level name. Default: "info".
	LogLevel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServiceURL: "http://127.0.0.1:5000",
		Journal:    true,
		LogFile:    defaultLogFile(),
		LogLevel:   "info",
	}
}

// Load reads .env from the working directory if present, then builds the
// config from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.ServiceURL = getenvDefault("MATHDRILL_SERVICE_URL", cfg.ServiceURL)
	cfg.DBPath = getenvDefault("MATHDRILL_DB", cfg.DBPath)
	cfg.LogFile = getenvDefault("MATHDRILL_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getenvDefault("MATHDRILL_LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("MATHDRILL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("config: MATHDRILL_HTTP_TIMEOUT=%q is not a valid duration: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("MATHDRILL_JOURNAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("config: MATHDRILL_JOURNAL=%q is not a boolean: %w", v, err)
		}
		cfg.Journal = b
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("config: service URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: service URL %q must be an absolute http(s) URL", c.ServiceURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: negative HTTP timeout %s", c.HTTPTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

// defaultLogFile returns $XDG_STATE_HOME/mathdrill/mathdrill.log, or ""
// when no home directory can be found.
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mathdrill", "mathdrill.log")
}
