package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SessionSecret string // Required in prod: HMAC secret for session tokens (min 32 bytes)
	Issuer        string // Optional: issuer for session tokens and TOTP provisioning (default: trackroom)

	DatabaseFile string // Optional: path to SQLite database file (default: ./trackroom.db)
	PepperFile   string // Optional: path to file containing pepper for token hashing (default: ./pepper)

	BaseURL      string // Optional: externally visible web root for emailed links (default: http://localhost:8080)
	SMTPHost     string // Optional: SMTP relay host; when empty outside prod, links are logged instead
	SMTPPort     int    // Optional: SMTP relay port (default: 587)
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	CookieDomain string // Optional: cookie domain attribute

	Env                  string        // Environment (dev, test, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	LoginTokenTTL        time.Duration // Magic-link lifetime (default: 15m)
	InviteTTL            time.Duration // Invitation lifetime (default: 168h)
}

func LoadConfig() Config {
	return Config{
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Issuer:        getEnvOrDefault("ISSUER", "trackroom"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "trackroom.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		BaseURL:      getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@trackroom.local"),
		SMTPFromName: getEnvOrDefault("SMTP_FROM_NAME", "Trackroom"),

		CookieDomain: os.Getenv("COOKIE_DOMAIN"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		LoginTokenTTL:        getEnvDurationOrDefault("LOGIN_TOKEN_TTL", 15*time.Minute),
		InviteTTL:            getEnvDurationOrDefault("INVITE_TTL", 7*24*time.Hour),
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are treated as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
