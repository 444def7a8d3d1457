package app

import (
	"os"
	"strconv"
	"strings"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	AppEnv          string
	HTTPAddr        string
	HistoryDriver   string
	HistoryDSN      string
	APITokenHash    string
	RateLimitPerMin int
	CORSEnabled     bool
	CredentialsFile string
	TokenFile       string
}

func LoadConfig() Config {
	return Config{
		AppEnv:          envOrDefault("APP_ENV", "development"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		HistoryDriver:   envOrDefault("HISTORY_DRIVER", "sqlite"),
		HistoryDSN:      os.Getenv("HISTORY_DSN"),
		APITokenHash:    os.Getenv("API_TOKEN_HASH"),
		RateLimitPerMin: intOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		CORSEnabled:     boolOrDefault("CORS_ENABLED", true),
		CredentialsFile: envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		TokenFile:       envOrDefault("GOOGLE_TOKEN_FILE", "token.json"),
	}
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsToInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func intOrDefault(key string, fallback int) int {
	v := stringsToInt(os.Getenv(key))
	if v <= 0 {
		return fallback
	}
	return v
}

func boolOrDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
