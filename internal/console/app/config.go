package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	PingOneAPIBaseURL  string // Required: PingOne MFA gateway base URL
	PingOneAuthBaseURL string // Required: PingOne auth base URL (token endpoint)
	EnvironmentID      string // Required: environment for worker token grants
	ClientID           string // Required: worker application client id
	ClientSecret       string // Required: worker application client secret
	Region             string // Optional: PingOne region (NA, EU, CA, AP) (default: NA)

	APIKeyFingerprints []string // Optional: SHA-256 fingerprints of operator keys; empty disables auth

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./console.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	LogRetention         time.Duration // Debug log retention (default: 168h)
	FlowTTL              time.Duration // Flow session lifetime (default: 24h)
	PendingTTL           time.Duration // Parked registration lifetime (default: 1h)
	TokenRefreshInterval time.Duration // Worker token refresh interval (default: 5m)
	PolicyCacheTTL       time.Duration // Policy list cache TTL (default: 5m)
}

func LoadConfig() Config {
	cfg := Config{
		PingOneAPIBaseURL:  os.Getenv("CONSOLE_PINGONE_API_URL"),
		PingOneAuthBaseURL: os.Getenv("CONSOLE_PINGONE_AUTH_URL"),
		EnvironmentID:      os.Getenv("CONSOLE_PINGONE_ENVIRONMENT_ID"),
		ClientID:           os.Getenv("CONSOLE_PINGONE_CLIENT_ID"),
		ClientSecret:       os.Getenv("CONSOLE_PINGONE_CLIENT_SECRET"),
		Region:             getEnvOrDefault("CONSOLE_PINGONE_REGION", "NA"),

		DatabaseFile:         getEnvOrDefault("CONSOLE_DATABASE_FILE", "console.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		LogRetention:         getEnvDurationOrDefault("CONSOLE_LOG_RETENTION", 7*24*time.Hour),
		FlowTTL:              getEnvDurationOrDefault("CONSOLE_FLOW_TTL", 24*time.Hour),
		PendingTTL:           getEnvDurationOrDefault("CONSOLE_PENDING_TTL", 1*time.Hour),
		TokenRefreshInterval: getEnvDurationOrDefault("CONSOLE_TOKEN_REFRESH_INTERVAL", 5*time.Minute),
		PolicyCacheTTL:       getEnvDurationOrDefault("CONSOLE_POLICY_CACHE_TTL", 5*time.Minute),
	}

	// Comma-separated SHA-256 fingerprints of operator API keys. Empty
	// disables operator auth (local development).
	if v := os.Getenv("CONSOLE_API_KEY_FINGERPRINTS"); v != "" {
		for _, fp := range strings.Split(v, ",") {
			if fp = strings.TrimSpace(fp); fp != "" {
				cfg.APIKeyFingerprints = append(cfg.APIKeyFingerprints, fp)
			}
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
