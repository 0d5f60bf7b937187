package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the translation service configuration. Every field is sourced
// from a single environment variable and affects only its named behavior.
type Config struct {
	// Port is the HTTP listening port.
	Port string

	// ModelID identifies the translation model on the inference backend.
	ModelID string

	// EngineURL is the base URL of the inference backend API.
	EngineURL string

	// MaxTextLength is the maximum accepted input text length in runes.
	MaxTextLength int

	// MaxOutputLength caps the number of generated tokens per translation.
	MaxOutputLength int

	// NumBeams is the beam width passed to the generation call.
	NumBeams int

	// MaxBodyBytes is the maximum accepted request body size.
	MaxBodyBytes int64

	// EagerLoad triggers the model load at process start instead of waiting
	// for the first translation request.
	EagerLoad bool

	// CORSOrigins lists the allowed cross-origin callers. "*" allows all.
	CORSOrigins []string

	// RateLimit is the sustained requests-per-second budget for the
	// translate endpoint. Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst size for the rate limiter.
	RateBurst int

	// LogEnv selects the zap config: "production" or "development".
	LogEnv string
}

// FromEnv loads the configuration from environment variables, falling back
// to defaults suitable for local development.
func FromEnv() *Config {
	return &Config{
		Port:            getEnvOrDefault("RIMAY_PORT", "8080"),
		ModelID:         getEnvOrDefault("RIMAY_MODEL_ID", "americasnlp/mt5-base-es-quw"),
		EngineURL:       getEnvOrDefault("RIMAY_ENGINE_URL", "http://localhost:5000"),
		MaxTextLength:   getEnvAsIntOrDefault("RIMAY_MAX_TEXT_LENGTH", 512),
		MaxOutputLength: getEnvAsIntOrDefault("RIMAY_MAX_OUTPUT_LENGTH", 200),
		NumBeams:        getEnvAsIntOrDefault("RIMAY_NUM_BEAMS", 4),
		MaxBodyBytes:    int64(getEnvAsIntOrDefault("RIMAY_MAX_BODY_BYTES", 1<<16)),
		EagerLoad:       getEnvAsBoolOrDefault("RIMAY_EAGER_LOAD", false),
		CORSOrigins:     splitAndTrimStrings(getEnvOrDefault("RIMAY_CORS_ORIGINS", "*"), ","),
		RateLimit:       getEnvAsFloatOrDefault("RIMAY_RATE_LIMIT", 0),
		RateBurst:       getEnvAsIntOrDefault("RIMAY_RATE_BURST", 10),
		LogEnv:          getEnvOrDefault("LOG_ENV", "development"),
	}
}

// getEnvOrDefault gets an environment variable or returns the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets an environment variable as int or returns the default.
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault gets an environment variable as float64 or returns the default.
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault gets an environment variable as bool or returns the default.
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// splitAndTrimStrings splits a string by delimiter and trims whitespace from each part.
func splitAndTrimStrings(s, delimiter string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
