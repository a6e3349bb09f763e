package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/funfair/waitpredictor/internal/mlmodel"
)

// Config holds all configuration for the wait predictor API
type Config struct {
	// HTTP
	Port               string
	CORSAllowedOrigins []string
	StaticDir          string

	// Model
	ModelPath string

	// Prediction log (optional). DATABASE_URL wins over SQLITE_DATABASE.
	DatabaseURL            string
	SQLiteDatabasePath     string
	PredictionLogRetention time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// HTTP
		Port:               getEnv("PORT", "8081"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		StaticDir:          getEnv("STATIC_DIR", ""),

		// Model
		ModelPath: getEnv("MODEL_PATH", mlmodel.DefaultPath),

		// Prediction log
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		SQLiteDatabasePath:     getEnv("SQLITE_DATABASE", ""),
		PredictionLogRetention: time.Duration(getEnvInt("PREDICTION_LOG_RETENTION_HOURS", 168)) * time.Hour,
	}
}

// PredictionLogEnabled reports whether any prediction log backend is configured
func (c *Config) PredictionLogEnabled() bool {
	return c.DatabaseURL != "" || c.SQLiteDatabasePath != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
