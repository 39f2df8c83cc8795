package config

import (
	"os"
	"testing"
	"time"

	"github.com/chimelabs/chime/internal/logger"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Clear environment
	os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("Expected default redis URL, got %s", cfg.RedisURL)
	}
	if cfg.SnoozeDuration != 9*time.Minute {
		t.Errorf("Expected snooze duration 9m, got %v", cfg.SnoozeDuration)
	}
	if cfg.ConfirmDisplayDuration != 3*time.Second {
		t.Errorf("Expected confirm display 3s, got %v", cfg.ConfirmDisplayDuration)
	}
	if cfg.TickInterval != 1*time.Second {
		t.Errorf("Expected tick interval 1s, got %v", cfg.TickInterval)
	}
	if cfg.Logging == nil {
		t.Fatal("Expected logging config to be populated")
	}
	if cfg.Logging.Level != logger.LevelInfo {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
	if !cfg.Logging.Console.Enabled {
		t.Error("Expected console logging enabled by default")
	}
	if cfg.Logging.File.Enabled {
		t.Error("Expected file logging disabled by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("REDIS_URL", "redis://cache:6380/1")
	os.Setenv("SNOOZE_DURATION", "5m")
	os.Setenv("CONFIRM_DISPLAY_DURATION", "10s")
	os.Setenv("TICK_INTERVAL", "250ms")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FILE_ENABLED", "true")
	os.Setenv("LOG_FILE_PATH", "/tmp/chime.log")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RedisURL != "redis://cache:6380/1" {
		t.Errorf("Expected overridden redis URL, got %s", cfg.RedisURL)
	}
	if cfg.SnoozeDuration != 5*time.Minute {
		t.Errorf("Expected snooze duration 5m, got %v", cfg.SnoozeDuration)
	}
	if cfg.ConfirmDisplayDuration != 10*time.Second {
		t.Errorf("Expected confirm display 10s, got %v", cfg.ConfirmDisplayDuration)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("Expected tick interval 250ms, got %v", cfg.TickInterval)
	}
	if cfg.Logging.Level != logger.LevelDebug {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
	if !cfg.Logging.File.Enabled {
		t.Error("Expected file logging enabled")
	}
	if cfg.Logging.File.Path != "/tmp/chime.log" {
		t.Errorf("Expected overridden log path, got %s", cfg.Logging.File.Path)
	}
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("SNOOZE_DURATION", "not-a-duration")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.SnoozeDuration != 9*time.Minute {
		t.Errorf("Expected fallback to 9m, got %v", cfg.SnoozeDuration)
	}
}

func TestLoadConfig_PayloadFormat(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.PayloadFormat != "json" {
		t.Errorf("Expected default payload format json, got %s", cfg.PayloadFormat)
	}

	os.Setenv("PAYLOAD_FORMAT", "protobuf")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.PayloadFormat != "protobuf" {
		t.Errorf("Expected payload format protobuf, got %s", cfg.PayloadFormat)
	}

	os.Setenv("PAYLOAD_FORMAT", "xml")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for unsupported payload format")
	}
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	os.Clearenv()
	os.Setenv("LOG_LEVEL", "verbose")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

func TestLoadConfig_NonPositiveDurationsRejected(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"zero snooze", "SNOOZE_DURATION"},
		{"zero confirm", "CONFIRM_DISPLAY_DURATION"},
		{"zero tick", "TICK_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.key, "0s")

			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=0s", tt.key)
			}
		})
	}
}
