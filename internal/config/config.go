package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chimelabs/chime/internal/logger"
)

// Config holds all configuration for the chime daemon
type Config struct {
	// RedisURL is the connection URL for the alarm store
	RedisURL string
	// SnoozeDuration is how far into the future a snooze re-fires
	SnoozeDuration time.Duration
	// ConfirmDisplayDuration is how long snooze/dismiss confirmations stay visible
	ConfirmDisplayDuration time.Duration
	// TickInterval is the polling resolution of the exact-alarm service
	TickInterval time.Duration
	// PayloadFormat selects the registration payload encoding ("json" or
	// "protobuf")
	PayloadFormat string
	// PprofPort is the port the pprof debug server listens on
	PprofPort string
	// Logging configuration
	Logging *logger.Config
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		RedisURL:               getEnv("REDIS_URL", "redis://localhost:6379"),
		SnoozeDuration:         getEnvAsDuration("SNOOZE_DURATION", 9*time.Minute),
		ConfirmDisplayDuration: getEnvAsDuration("CONFIRM_DISPLAY_DURATION", 3*time.Second),
		TickInterval:           getEnvAsDuration("TICK_INTERVAL", 1*time.Second),
		PayloadFormat:          getEnv("PAYLOAD_FORMAT", "json"),
		PprofPort:              getEnv("PPROF_PORT", "6060"),
		Logging:                loadLoggingConfig(),
	}

	// Validate required fields
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL cannot be empty")
	}
	if cfg.SnoozeDuration <= 0 {
		return nil, fmt.Errorf("SNOOZE_DURATION must be positive")
	}
	if cfg.ConfirmDisplayDuration <= 0 {
		return nil, fmt.Errorf("CONFIRM_DISPLAY_DURATION must be positive")
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive")
	}
	if cfg.PayloadFormat != "json" && cfg.PayloadFormat != "protobuf" {
		return nil, fmt.Errorf("PAYLOAD_FORMAT must be json or protobuf, got %q", cfg.PayloadFormat)
	}

	// Validate logging config
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
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

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
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

// loadLoggingConfig loads logging configuration from environment variables
func loadLoggingConfig() *logger.Config {
	cfg := logger.DefaultConfig()

	// Global settings
	if level := getEnv("LOG_LEVEL", ""); level != "" {
		cfg.Level = logger.LogLevel(level)
	}
	if format := getEnv("LOG_FORMAT", ""); format != "" {
		cfg.Format = logger.LogFormat(format)
	}

	// Tier 1: Console
	cfg.Console.Enabled = getEnvAsBool("LOG_CONSOLE_ENABLED", true)
	cfg.Console.Color = getEnvAsBool("LOG_COLOR", true)
	cfg.Console.BufferSize = getEnvAsInt("LOG_CONSOLE_BUFFER_SIZE", 65536)
	cfg.Console.FlushInterval = getEnvAsDuration("LOG_CONSOLE_FLUSH_INTERVAL", 100*time.Millisecond)

	// Tier 2: File
	cfg.File.Enabled = getEnvAsBool("LOG_FILE_ENABLED", false)
	cfg.File.Path = getEnv("LOG_FILE_PATH", "/var/log/chime/chime.log")
	cfg.File.MaxSizeMB = getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 100)
	cfg.File.MaxBackups = getEnvAsInt("LOG_FILE_MAX_BACKUPS", 5)
	cfg.File.MaxAgeDays = getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 30)
	cfg.File.Compress = getEnvAsBool("LOG_FILE_COMPRESS", true)
	cfg.File.BufferSize = getEnvAsInt("LOG_FILE_BUFFER_SIZE", 10000)
	cfg.File.BatchSize = getEnvAsInt("LOG_FILE_BATCH_SIZE", 100)
	cfg.File.BatchInterval = getEnvAsDuration("LOG_FILE_BATCH_INTERVAL", 100*time.Millisecond)

	return cfg
}
