// Package logger provides structured logging for the chime daemon with a
// console tier and an optional rotating-file tier.
package logger

import (
	"fmt"
	"sync"
)

// Logger is the main interface for logging throughout the application
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a logger tagged with a component
	WithComponent(component Component) Logger

	// Close flushes and closes all log destinations
	Close() error
}

// LogEntry represents a single log entry with all metadata
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Message   string                 `json:"message"`
	Component Component              `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	AlarmID   string                 `json:"alarm_id,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// MultiLogger implements Logger by dispatching to the enabled tiers
type MultiLogger struct {
	config    *Config
	console   *ConsoleLogger
	file      *FileLogger
	component Component
}

// NewLogger creates a new multi-tier logger based on configuration
func NewLogger(config *Config) (*MultiLogger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	ml := &MultiLogger{config: config}

	if config.Console.Enabled {
		console, err := NewConsoleLogger(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create console logger: %w", err)
		}
		ml.console = console
	}

	if config.File.Enabled {
		file, err := NewFileLogger(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		ml.file = file
	}

	return ml, nil
}

func (ml *MultiLogger) Debug(msg string, args ...interface{}) { ml.log(LevelDebug, msg, args...) }
func (ml *MultiLogger) Info(msg string, args ...interface{})  { ml.log(LevelInfo, msg, args...) }
func (ml *MultiLogger) Warn(msg string, args ...interface{})  { ml.log(LevelWarn, msg, args...) }
func (ml *MultiLogger) Error(msg string, args ...interface{}) { ml.log(LevelError, msg, args...) }

// WithComponent returns a new logger tagged with a component
func (ml *MultiLogger) WithComponent(component Component) Logger {
	return &MultiLogger{
		config:    ml.config,
		console:   ml.console,
		file:      ml.file,
		component: component,
	}
}

// Close flushes and closes all log destinations
func (ml *MultiLogger) Close() error {
	var errs []error

	if ml.console != nil {
		if err := ml.console.Close(); err != nil {
			errs = append(errs, fmt.Errorf("console close: %w", err))
		}
	}
	if ml.file != nil {
		if err := ml.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("file close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing logger: %v", errs)
	}
	return nil
}

func (ml *MultiLogger) shouldLog(level LogLevel) bool {
	levels := map[LogLevel]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
	}
	return levels[level] >= levels[ml.config.Level]
}

// log dispatches a log entry to all enabled tiers. Variadic args are
// parsed as alternating key/value pairs.
func (ml *MultiLogger) log(level LogLevel, msg string, args ...interface{}) {
	if !ml.shouldLog(level) {
		return
	}

	fields := make(map[string]interface{}, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key := fmt.Sprintf("%v", args[i])
		fields[key] = args[i+1]
	}

	if ml.console != nil {
		ml.console.log(level, msg, ml.component, fields)
	}
	if ml.file != nil {
		ml.file.log(level, msg, ml.component, fields)
	}
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, args ...interface{})    {}
func (n *NoOpLogger) Info(msg string, args ...interface{})     {}
func (n *NoOpLogger) Warn(msg string, args ...interface{})     {}
func (n *NoOpLogger) Error(msg string, args ...interface{})    {}
func (n *NoOpLogger) WithComponent(component Component) Logger { return n }
func (n *NoOpLogger) Close() error                             { return nil }

var _ Logger = (*NoOpLogger)(nil)

// Global default logger (can be replaced)
var (
	defaultLogger Logger = &NoOpLogger{}
	loggerMu      sync.RWMutex
)

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}
