// Package config handles application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port            int
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// Vendor credentials. An empty key disables that vendor's adapter.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GoogleAPIKey    string

	// SummaryModel is the logical model used to title archived
	// conversations.
	SummaryModel string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// NATS event publishing. An empty URL disables it.
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// Observability
	LogLevel       string
	TracingEnabled bool
	OTLPEndpoint   string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		SummaryModel:      getEnv("SUMMARY_MODEL", "gpt-3.5-turbo"),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSCAFile:        os.Getenv("NATS_CA_FILE"),
		NATSCertFile:      os.Getenv("NATS_CERT_FILE"),
		NATSKeyFile:       os.Getenv("NATS_KEY_FILE"),
		NATSToken:         os.Getenv("NATS_TOKEN"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		TracingEnabled:    getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("OTLP_ENDPOINT", "localhost:4318"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.OpenAIAPIKey == "" && cfg.AnthropicAPIKey == "" && cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("at least one vendor API key is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
