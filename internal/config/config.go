package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benvon/board-stats/internal/validation"
)

// Config holds application configuration
type Config struct {
	TrelloAPIKey            string        `validate:"required"`
	TrelloAPIToken          string        `validate:"required"`
	TrelloBoardID           string        `validate:"required"`
	TrelloBaseURL           string        `validate:"required,url"`
	TrelloRequestsPerSecond float64       `validate:"gte=0"`
	TrelloBurst             int           `validate:"gte=1"`
	FetchConcurrency        int           `validate:"min=1,max=64"`
	DailyWindowDays         int           `validate:"min=1,max=365"`
	WeeklyWindowWeeks       int           `validate:"min=1,max=104"`
	ServerPort              string        `validate:"required,numeric"`
	FrontendURL             string
	EnableHSTS              bool
	RedisURL                string
	RateLimit               string        `validate:"limiter_rate"`
	RequestTimeout          time.Duration `validate:"gt=0"`
	LogFormat               string        `validate:"oneof=json console"`
	ServerDebugMode         bool
	OTELEnabled             bool
	OTELEndpoint            string
}

// Load loads configuration from environment variables.
// Missing Trello credentials are an error: the server must not start without them.
func Load() (*Config, error) {
	cfg := &Config{
		TrelloAPIKey:            getEnv("TRELLO_API_KEY", ""),
		TrelloAPIToken:          getEnv("TRELLO_API_TOKEN", ""),
		TrelloBoardID:           getEnv("TRELLO_BOARD_ID", ""),
		TrelloBaseURL:           getEnv("TRELLO_BASE_URL", "https://api.trello.com/1"),
		TrelloRequestsPerSecond: getEnvFloat("TRELLO_REQUESTS_PER_SECOND", 10),
		TrelloBurst:             getEnvInt("TRELLO_BURST", 10),
		FetchConcurrency:        getEnvInt("FETCH_CONCURRENCY", 8),
		DailyWindowDays:         getEnvInt("DAILY_WINDOW_DAYS", 30),
		WeeklyWindowWeeks:       getEnvInt("WEEKLY_WINDOW_WEEKS", 12),
		ServerPort:              getEnv("SERVER_PORT", getEnv("PORT", "3000")),
		FrontendURL:             getEnv("FRONTEND_URL", "http://localhost:3000"),
		EnableHSTS:              getEnvBool("ENABLE_HSTS", false),
		RedisURL:                getEnv("REDIS_URL", ""),
		RateLimit:               getEnv("RATE_LIMIT", "60-M"),
		RequestTimeout:          getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		ServerDebugMode:         getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:             getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:            getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// AllowedOrigins splits FrontendURL into trimmed, de-duplicated origins
func (c *Config) AllowedOrigins() []string {
	var origins []string
	seen := make(map[string]bool)
	for _, o := range strings.Split(c.FrontendURL, ",") {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
