package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Reseller ResellerConfig
	Webhook  WebhookConfig
	Jobs     JobsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// ResellerConfig holds reseller API client configuration
type ResellerConfig struct {
	BaseURL         string
	Login           string
	Password        string
	Timeout         time.Duration
	TokenTTL        time.Duration
	BreakerCooldown time.Duration
	BreakerFailures int
}

// WebhookConfig holds inbound payment webhook configuration
type WebhookConfig struct {
	Secret       string
	MaxBodyBytes int64
}

// JobsConfig holds background job schedules
type JobsConfig struct {
	SyncRetrySchedule        string
	IdempotencyPruneSchedule string
	IdempotencyKeyTTL        time.Duration
	SyncRetryBatch           int
	Enabled                  bool
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "45s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "proxyledger"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Reseller: ResellerConfig{
			BaseURL:         strings.TrimSuffix(getEnv("RESELLER_API_URL", "https://api.dataimpulse.com/reseller"), "/"),
			Login:           getEnv("RESELLER_API_LOGIN", ""),
			Password:        getEnv("RESELLER_API_PASSWORD", ""),
			Timeout:         getEnvAsDuration("RESELLER_API_TIMEOUT", "30s"),
			TokenTTL:        getEnvAsDuration("RESELLER_TOKEN_TTL", "23h"),
			BreakerFailures: getEnvAsInt("RESELLER_BREAKER_FAILURES", 5),
			BreakerCooldown: getEnvAsDuration("RESELLER_BREAKER_COOLDOWN", "30s"),
		},
		Webhook: WebhookConfig{
			Secret:       getEnv("WEBHOOK_SECRET", ""),
			MaxBodyBytes: int64(getEnvAsInt("WEBHOOK_MAX_BODY_BYTES", 1<<20)),
		},
		Jobs: JobsConfig{
			Enabled:                  getEnvAsBool("JOBS_ENABLED", true),
			SyncRetrySchedule:        getEnv("SYNC_RETRY_SCHEDULE", "*/10 * * * *"),
			SyncRetryBatch:           getEnvAsInt("SYNC_RETRY_BATCH", 50),
			IdempotencyPruneSchedule: getEnv("IDEMPOTENCY_PRUNE_SCHEDULE", "0 3 * * *"),
			IdempotencyKeyTTL:        getEnvAsDuration("IDEMPOTENCY_KEY_TTL", "24h"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if c.Reseller.BaseURL == "" {
		return fmt.Errorf("reseller api url cannot be empty")
	}
	if c.Reseller.Timeout <= 0 {
		return fmt.Errorf("reseller api timeout must be positive, got %s", c.Reseller.Timeout)
	}
	if c.Reseller.TokenTTL <= 0 {
		return fmt.Errorf("reseller token ttl must be positive, got %s", c.Reseller.TokenTTL)
	}
	if c.Reseller.BreakerFailures < 1 {
		return fmt.Errorf("breaker failure threshold must be at least 1, got %d", c.Reseller.BreakerFailures)
	}

	if c.Webhook.MaxBodyBytes <= 0 {
		return fmt.Errorf("webhook max body bytes must be positive")
	}

	if c.Jobs.SyncRetryBatch < 1 {
		return fmt.Errorf("sync retry batch must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
