// Package logger provides logging utilities for the application.
package logger

import (
	"log"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// L is the global logger instance.
var L *zap.Logger

// logger aliases L so tests can swap the backing logger.
var logger *zap.Logger

// Environment represents the application environment type.
type Environment string

const (
	// EnvironmentDevelopment represents the development environment.
	EnvironmentDevelopment Environment = "development"
	// EnvironmentProduction represents the production environment.
	EnvironmentProduction Environment = "production"
)

// LogLevel represents the logging level type.
type LogLevel string

const (
	// LogLevelDebug represents the debug logging level.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo represents the info logging level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn represents the warn logging level.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError represents the error logging level.
	LogLevelError LogLevel = "error"
)

// InitLogger initializes the global logger with the specified environment and
// log level. The optional levels map configures per-name levels for loggers
// created with Named (e.g. {"api.graphql": "debug"}).
func InitLogger(environment Environment, logLevel LogLevel, levels map[string]string) {
	var cfg zap.Config

	if environment == EnvironmentDevelopment {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	defaultLevel := getZapLevel(string(logLevel))
	cfg.Level.SetLevel(zapcore.DebugLevel) // per-name filtering decides what is emitted

	var err error
	L, err = cfg.Build()
	if err != nil {
		log.Printf("Failed to initialize zap logger: %v", err)
		os.Exit(1)
	}
	logger = L
	defer func() { _ = L.Sync() }()

	InitLevelConfig(levels, defaultLevel)

	// Redirect standard log to zap
	zap.RedirectStdLog(L)

	// Redirect slog to zap
	slogHandler := zapslog.NewHandler(L.Core())
	slogLogger := slog.New(slogHandler)
	slog.SetDefault(slogLogger)
}

// Named returns a child logger with the given name whose level honors the
// hierarchical level configuration (exact name first, then parent segments,
// then the global default).
func Named(name string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	level := GetLevelForName(name)
	return logger.Named(name).WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelFilterCore{Core: core, level: level}
	}))
}

func getZapLevel(level string) zapcore.Level {
	parsed, err := ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
