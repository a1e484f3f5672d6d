package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSecretKey is only acceptable in dev.
const DefaultSecretKey = "dev-secret-key"

type Config struct {
	AiraProtocol          string        // Optional: vendor scheme, http or https (default: https)
	AiraServerIP          string        // Optional: vendor host (default: 192.168.1.100)
	AiraServerPort        string        // Optional: vendor port (default: 443)
	AiraUsername          string        // Optional: vendor login (default: admin)
	AiraPassword          string        // Optional: vendor password (default: admin)
	AiraInsecureTLS       bool          // Optional: skip vendor certificate verification (default: false)
	AiraRequestTimeout    time.Duration // Optional: per-call vendor timeout (default: 10s)
	AiraRetryOnAuthReject bool          // Optional: refresh and retry once on 401/403 (default: false)

	SecretKey              string        // Seals camera credentials at rest (default: dev-secret-key)
	DatabaseFile           string        // Optional: path to SQLite database file (default: ./facegate.db)
	FFmpegPath             string        // Optional: ffmpeg binary for camera media (default: ffmpeg)
	TokenKeepaliveInterval time.Duration // Optional: 0 disables the keepalive worker (default: 5m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AiraProtocol:          strings.ToLower(getEnvOrDefault("AIRA_PROTOCOL", "https")),
		AiraServerIP:          getEnvOrDefault("AIRA_SERVER_IP", "192.168.1.100"),
		AiraServerPort:        getEnvOrDefault("AIRA_SERVER_PORT", "443"),
		AiraUsername:          getEnvOrDefault("AIRA_USERNAME", "admin"),
		AiraPassword:          getEnvOrDefault("AIRA_PASSWORD", "admin"),
		AiraInsecureTLS:       getEnvBoolOrDefault("AIRA_TLS_INSECURE_SKIP_VERIFY", false),
		AiraRequestTimeout:    getEnvDurationOrDefault("AIRA_REQUEST_TIMEOUT", 10*time.Second),
		AiraRetryOnAuthReject: getEnvBoolOrDefault("AIRA_RETRY_ON_AUTH_REJECTION", false),

		SecretKey:              getEnvOrDefault("SECRET_KEY", DefaultSecretKey),
		DatabaseFile:           getEnvOrDefault("FACEGATE_DATABASE_FILE", "facegate.db"),
		FFmpegPath:             getEnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		TokenKeepaliveInterval: getEnvDurationOrDefault("TOKEN_KEEPALIVE_INTERVAL", 5*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if c.AiraProtocol != "http" && c.AiraProtocol != "https" {
		return fmt.Errorf("AIRA_PROTOCOL must be http or https, got %q", c.AiraProtocol)
	}
	if c.AiraServerIP == "" {
		return errors.New("AIRA_SERVER_IP is required")
	}
	if _, err := strconv.ParseUint(c.AiraServerPort, 10, 16); err != nil {
		return fmt.Errorf("AIRA_SERVER_PORT is not a valid port: %q", c.AiraServerPort)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	return nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
