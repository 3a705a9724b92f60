package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/galhub/galhub/pkg/cryptox"
	"github.com/galhub/galhub/pkg/jwtx"

	"github.com/galhub/galhub/internal/server/captcha"
)

type Config struct {
	TokenSecret string        // Secret for signing session tokens. Required when Env is prod
	TokenTTL    time.Duration // Session token lifetime (default: 24h)
	BcryptCost  int           // Password hashing work factor (default: 12)

	CaptchaTTL           time.Duration // Challenge lifetime (default: 5m)
	CaptchaSweepInterval time.Duration // Expired challenge sweep cadence (default: 1m)

	AdminUsername string // Optional: bootstrap admin account username
	AdminEmail    string // Optional: bootstrap admin account email
	AdminPassword string // Optional: bootstrap admin account password

	CORSOrigins []string // Browser origins allowed to call the API. Empty disables CORS

	DatabaseFile        string        // Path to SQLite database file (default: ./galhub.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		TokenTTL:    getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultSessionTTL),
		BcryptCost:  getEnvIntOrDefault("BCRYPT_COST", cryptox.DefaultHashCost),

		CaptchaTTL:           getEnvDurationOrDefault("CAPTCHA_TTL", captcha.DefaultTTL),
		CaptchaSweepInterval: getEnvDurationOrDefault("CAPTCHA_SWEEP_INTERVAL", captcha.DefaultSweepInterval),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CORSOrigins: getEnvListOrDefault("CORS_ORIGIN", nil),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "galhub.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
