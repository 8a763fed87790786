package config

import (
	"os"
	"strconv"
)

// Config holds all collate configuration.
type Config struct {
	Server ServerConfig
	Report ReportConfig
	Log    LogConfig
}

// ServerConfig holds HTTP serving settings.
type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	OutputDir string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// defaultMaxUploadBytes caps one request's total upload size at 1GB.
const defaultMaxUploadBytes = 1000 * 1024 * 1024

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:           getenv("COLLATE_ADDR", ":8080"),
			MaxUploadBytes: getenvInt64("COLLATE_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		},
		Report: ReportConfig{
			OutputDir: getenv("COLLATE_OUTPUT_DIR", "uploads"),
		},
		Log: LogConfig{
			Level: getenv("COLLATE_LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
