package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output), which keeps the
// interactive session loop free of stray terminal writes.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "VNCPICK_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks VNCPICK_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the VNCPICK_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for the interactive tool, which wants silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogDiscovery logs the outcome of one discovery round
func LogDiscovery(source string, count int, err error) {
	if err != nil {
		Warn("discovery degraded to empty result",
			zap.String("source", source),
			zap.Error(err),
		)
		return
	}
	Info("discovery complete",
		zap.String("source", source),
		zap.Int("candidates", count),
	)
}

// LogRenderRoundTrip logs one renderer present/event cycle
func LogRenderRoundTrip(directives int, eventLine string) {
	Debug("renderer round-trip",
		zap.Int("directives", directives),
		zap.String("event", eventLine),
	)
}

// LogSessionStart logs the launch of a viewer session
func LogSessionStart(host string, port string, args []string) {
	Info("viewer session starting",
		zap.String("host", host),
		zap.String("port", port),
		zap.Strings("args", args),
	)
}

// LogSessionEnd logs the completion of a viewer session
func LogSessionEnd(host string, port string, exitCode int) {
	Info("viewer session ended",
		zap.String("host", host),
		zap.String("port", port),
		zap.Int("exit_code", exitCode),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
