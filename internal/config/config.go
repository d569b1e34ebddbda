// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	// DBPath is the credential store file. Empty means "resolve the default
	// under the user's home directory at open time".
	DBPath   string
	LogLevel slog.Level
}

// Load reads configuration from environment variables and returns a
// validated Config. Both variables are optional: REDISPASS_DB_PATH overrides
// the default ~/.redis_pass.db store location, and REDISPASS_LOG_LEVEL
// (debug, info, warn, error) defaults to info.
func Load() (*Config, error) {
	cfg := &Config{LogLevel: slog.LevelInfo}

	if v, ok := os.LookupEnv("REDISPASS_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("REDISPASS_LOG_LEVEL"); ok && v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func parseLevel(v string) (slog.Level, error) {
	switch v {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("REDISPASS_LOG_LEVEL has invalid level %q (want debug, info, warn, or error)", v)
	}
}
