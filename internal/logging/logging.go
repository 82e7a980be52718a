package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Debug selects the development configuration.
func New(debug bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		// Development configuration with more verbose output
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// parseLevel maps LOG_LEVEL onto zap. GORM's "silent" becomes error.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error", "silent":
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// Nop returns a sugared logger that discards everything
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
