package utils

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"interviewsched/config"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration from the loaded config.
func InitializeLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config

	if cfg != nil && cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel
	if cfg != nil && cfg.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	Logger = logger
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		if _, err := InitializeLogger(&config.AppConfig); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}
	return Logger
}
