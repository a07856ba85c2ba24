package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	SerpAPIKey     string
	CORSOrigins    []string
	HTTPAddr       string
	SerpAPITimeout time.Duration
	SerpAPITries   int
}

// Load loads configuration from environment variables.
// A missing SERPAPI_KEY is fatal at startup, not a per-request error.
func Load() Config {
	return Config{
		SerpAPIKey:     getEnvOrPanic("SERPAPI_KEY"),
		CORSOrigins:    splitOrigins(os.Getenv("CORS_ORIGINS")),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		SerpAPITimeout: time.Duration(getEnvInt("SERPAPI_TIMEOUT_SECONDS", 30)) * time.Second,
		SerpAPITries:   getEnvInt("SERPAPI_MAX_TRIES", 3),
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvOrPanic(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic("Missing required environment variable: " + key)
	}
	return value
}
