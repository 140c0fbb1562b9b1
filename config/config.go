package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the full application configuration, read once at startup.
type Settings struct {
	Port           string
	DataDir        string
	PreferredYear  string
	AllowedOrigins []string
	BasemapsFile   string

	LogLevel      string
	LogConsole    bool
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// App holds the loaded settings for the whole process.
var App Settings

// LoadEnv reads a .env file when one is present.
func LoadEnv() error {
	return godotenv.Load()
}

// Load populates App from environment variables with defaults. The
// preferred year defaults to 2014 to match the original dataset; when
// that year is absent the handlers fall back to the most recent one.
func Load() {
	App = Settings{
		Port:           getEnvWithDefault("PORT", "8080"),
		DataDir:        getEnvWithDefault("DATA_DIR", "./bixis"),
		PreferredYear:  getEnvWithDefault("DEFAULT_YEAR", "2014"),
		AllowedOrigins: splitAndTrim(getEnvWithDefault("ALLOWED_ORIGINS", "*")),
		BasemapsFile:   os.Getenv("BASEMAPS_FILE"),

		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		LogConsole:    getEnvAsBool("LOG_CONSOLE", true),
		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
