package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from the environment.
type Config struct {
	APIBaseURL string
	ConfigDir  string
	LogLevel   string
}

// Load reads a .env file if present and resolves the configuration from the
// environment, with the reference backend address as the default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	return Config{
		APIBaseURL: getEnv("DOCQA_API_BASE", "http://127.0.0.1:8000"),
		ConfigDir:  getEnv("DOCQA_CONFIG_DIR", ".config"),
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
	}
}

// SlogLevel maps the configured level name to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
