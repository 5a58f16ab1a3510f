package utils

import (
	"log"

	"solace/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared zap instance used across handlers and services.
var Logger *zap.Logger

// InitializeLogger builds the logger: JSON output in production, colored
// console output in development. The level comes from LOG_LEVEL, falling back
// to info in production and debug in development.
func InitializeLogger() {
	var cfg zap.Config

	if IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel(zapcore.InfoLevel))
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel(zapcore.DebugLevel))
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

func logLevel(fallback zapcore.Level) zapcore.Level {
	raw := config.AppConfig.LogLevel
	if raw == "" {
		return fallback
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return fallback
	}
	return level
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
