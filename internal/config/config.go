// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr       string
	DBPath           string
	SessionTTL       time.Duration
	PurgeInterval    time.Duration
	SecureCookies    bool
	FallbackEnabled  bool
	FallbackUsername string
	FallbackPassword string
	LogLevel         slog.Level
	LogFormat        string
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional. Defaults: IOCPANEL_LISTEN_ADDR (127.0.0.1:8080),
// IOCPANEL_DB_PATH (iocpanel.db), IOCPANEL_SESSION_TTL (24h),
// IOCPANEL_SESSION_PURGE_INTERVAL (1h, 0 disables), IOCPANEL_SECURE_COOKIES (false), IOCPANEL_FALLBACK_ENABLED (true),
// IOCPANEL_FALLBACK_USERNAME (admin), IOCPANEL_FALLBACK_PASSWORD (admin123),
// IOCPANEL_LOG_LEVEL (info), IOCPANEL_LOG_FORMAT (text).
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:       "127.0.0.1:8080",
		DBPath:           "iocpanel.db",
		SessionTTL:       24 * time.Hour,
		PurgeInterval:    time.Hour,
		FallbackEnabled:  true,
		FallbackUsername: "admin",
		FallbackPassword: "admin123",
		LogLevel:         slog.LevelInfo,
		LogFormat:        "text",
	}

	if v, ok := os.LookupEnv("IOCPANEL_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("IOCPANEL_DB_PATH"); ok {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("IOCPANEL_SESSION_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("IOCPANEL_SESSION_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("IOCPANEL_SESSION_TTL must be positive, got %q", v)
		}
		cfg.SessionTTL = parsed
	}

	if v, ok := os.LookupEnv("IOCPANEL_SESSION_PURGE_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("IOCPANEL_SESSION_PURGE_INTERVAL has invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("IOCPANEL_SESSION_PURGE_INTERVAL must not be negative, got %q", v)
		}
		cfg.PurgeInterval = parsed
	}

	var err error
	if cfg.SecureCookies, err = lookupBool("IOCPANEL_SECURE_COOKIES", cfg.SecureCookies); err != nil {
		return nil, err
	}
	if cfg.FallbackEnabled, err = lookupBool("IOCPANEL_FALLBACK_ENABLED", cfg.FallbackEnabled); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("IOCPANEL_FALLBACK_USERNAME"); ok {
		cfg.FallbackUsername = v
	}
	if v, ok := os.LookupEnv("IOCPANEL_FALLBACK_PASSWORD"); ok {
		cfg.FallbackPassword = v
	}
	if cfg.FallbackEnabled && (cfg.FallbackUsername == "" || cfg.FallbackPassword == "") {
		return nil, errors.New("fallback credential is enabled but IOCPANEL_FALLBACK_USERNAME or IOCPANEL_FALLBACK_PASSWORD is empty")
	}

	if v, ok := os.LookupEnv("IOCPANEL_LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("IOCPANEL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("IOCPANEL_LOG_FORMAT"); ok {
		format := strings.ToLower(strings.TrimSpace(v))
		if format != "text" && format != "json" {
			return nil, fmt.Errorf("IOCPANEL_LOG_FORMAT must be \"text\" or \"json\", got %q", v)
		}
		cfg.LogFormat = format
	}

	return cfg, nil
}

func lookupBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
