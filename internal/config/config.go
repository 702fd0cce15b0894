package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
)

// Key store backends
const (
	KeyStoreMemory   = "memory"
	KeyStoreSQLite   = "sqlite"
	KeyStorePostgres = "postgres"
	KeyStoreRedis    = "redis"
)

// Config holds application configuration
type Config struct {
	ServerPort  string
	FrontendURL string
	EnableHSTS  bool

	OpenAIKey     string
	AIProvider    string
	AIModel       string
	AIBaseURL     string
	AITemperature float64
	AIMaxAttempts int
	AIBackoffBase time.Duration

	KeyStore    string
	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	RabbitMQURL      string
	RabbitMQPrefetch int
	ResultTTL        time.Duration
	DLQRetention     time.Duration
	DLQGCInterval    time.Duration

	RateLimit    string
	HolidaysFile string

	WorkerDebugMode bool
	ServerDebugMode bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom loads configuration through getenv and validates it
func LoadFrom(getenv func(string) string) (*Config, error) {
	env := source(getenv)
	cfg := &Config{
		ServerPort:  env.str("SERVER_PORT", "8080"),
		FrontendURL: env.str("FRONTEND_URL", "http://localhost:3000"),
		EnableHSTS:  env.boolean("ENABLE_HSTS", false),

		OpenAIKey:     env.str("OPENAI_API_KEY", ""),
		AIProvider:    env.str("AI_PROVIDER", "openai"),
		AIModel:       env.str("AI_MODEL", "gpt-4o-mini"),
		AIBaseURL:     env.str("AI_BASE_URL", ""),
		AITemperature: env.float("AI_TEMPERATURE", 0.3),
		AIMaxAttempts: env.integer("AI_MAX_ATTEMPTS", 3),
		AIBackoffBase: env.duration("AI_BACKOFF_BASE", time.Second),

		KeyStore:    strings.ToLower(env.str("KEY_STORE", KeyStoreSQLite)),
		DatabaseURL: env.str("DATABASE_URL", ""),
		SQLitePath:  env.str("SQLITE_PATH", DefaultSQLitePath()),
		RedisURL:    env.str("REDIS_URL", ""),

		RabbitMQURL:      env.str("RABBITMQ_URL", ""),
		RabbitMQPrefetch: env.integer("RABBITMQ_PREFETCH", 1),
		ResultTTL:        env.duration("RESULT_TTL", time.Hour),
		DLQRetention:     env.duration("DLQ_RETENTION", 24*time.Hour),
		DLQGCInterval:    env.duration("DLQ_GC_INTERVAL", time.Hour),

		RateLimit:    env.str("RATE_LIMIT", "5-S"),
		HolidaysFile: env.str("HOLIDAYS_FILE", ""),

		WorkerDebugMode: env.boolean("WORKER_DEBUG_MODE", false),
		ServerDebugMode: env.boolean("SERVER_DEBUG_MODE", false),
		OTELEnabled:     env.boolean("OTEL_ENABLED", false),
		OTELEndpoint:    env.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	switch c.KeyStore {
	case KeyStoreMemory:
	case KeyStoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when KEY_STORE=sqlite")
		}
	case KeyStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when KEY_STORE=postgres")
		}
	case KeyStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when KEY_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown KEY_STORE %q (want memory, sqlite, postgres or redis)", c.KeyStore)
	}

	if c.AIMaxAttempts <= 0 {
		return fmt.Errorf("AI_MAX_ATTEMPTS must be positive, got %d", c.AIMaxAttempts)
	}
	if c.AITemperature < 0 || c.AITemperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be between 0 and 2, got %v", c.AITemperature)
	}
	if c.RabbitMQPrefetch <= 0 {
		return fmt.Errorf("RABBITMQ_PREFETCH must be positive, got %d", c.RabbitMQPrefetch)
	}
	return nil
}

// ValidateWorker checks the settings the queue worker cannot run without
func (c *Config) ValidateWorker() error {
	if c.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL is required for the conversion worker")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required to store conversion results")
	}
	return nil
}

// AsyncEnabled reports whether the job endpoints can be served
func (c *Config) AsyncEnabled() bool {
	return c.RabbitMQURL != "" && c.RedisURL != ""
}

// AllowedOrigins splits FrontendURL on commas, trimming and de-duplicating
func (c *Config) AllowedOrigins() []string {
	return SplitList(c.FrontendURL)
}

// SplitList splits a comma-separated list, dropping blanks and duplicates
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		s := strings.TrimSpace(p)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// DefaultSQLitePath is ~/.config/slack-remind/remind.db, or a relative
// path when the home directory is unknown.
func DefaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".slack-remind", "remind.db")
	}
	return filepath.Join(dir, "slack-remind", "remind.db")
}

type source func(string) string

func (s source) str(key, defaultValue string) string {
	if value := s(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) boolean(key string, defaultValue bool) bool {
	if value := s(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func (s source) integer(key string, defaultValue int) int {
	if value := s(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (s source) float(key string, defaultValue float64) float64 {
	if value := s(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func (s source) duration(key string, defaultValue time.Duration) time.Duration {
	if value := s(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// AISettings returns the provider and retry settings for the AI pipeline
func (c *Config) AISettings() ai.Settings {
	return ai.Settings{
		Provider:    c.AIProvider,
		Model:       c.AIModel,
		BaseURL:     c.AIBaseURL,
		Temperature: c.AITemperature,
		MaxAttempts: c.AIMaxAttempts,
		BackoffBase: c.AIBackoffBase,
	}
}
