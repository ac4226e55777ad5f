// Package logger provides logging utilities for the application.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// levelCache caches resolved levels per logger name.
// Key: logger name (string), Value: zapcore.Level
var levelCache sync.Map

// Hierarchical level configuration.
var (
	levelConfigMu  sync.RWMutex
	levelConfigMap map[string]string // configured per-name levels
	globalLevel    zapcore.Level     // global default level
)

// InitLevelConfig initializes the hierarchical level configuration.
// Called from InitLogger with the levels map from the config file.
func InitLevelConfig(levels map[string]string, defaultLevel zapcore.Level) {
	levelConfigMu.Lock()
	defer levelConfigMu.Unlock()
	levelConfigMap = levels
	globalLevel = defaultLevel
	// Drop the cache, the configuration changed.
	levelCache = sync.Map{}
}

// GetLevelForName returns the most specific configured level for a logger
// name. Resolved levels are cached; matching is case sensitive.
func GetLevelForName(name string) zapcore.Level {
	if cached, ok := levelCache.Load(name); ok {
		return cached.(zapcore.Level)
	}

	level := computeLevelForName(name)
	levelCache.Store(name, level)

	return level
}

// computeLevelForName resolves the level for a name without the cache.
func computeLevelForName(name string) zapcore.Level {
	levelConfigMu.RLock()
	defer levelConfigMu.RUnlock()

	if len(levelConfigMap) == 0 || name == "" {
		return globalLevel
	}

	// Exact match first.
	if levelStr, ok := levelConfigMap[name]; ok {
		if level, err := ParseLevel(levelStr); err == nil {
			return level
		}
		// Invalid level value, fall through to parent matching.
	}

	// Walk up the "." separated hierarchy.
	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i > 0; i-- {
		prefix := strings.Join(parts[:i], ".")
		if levelStr, ok := levelConfigMap[prefix]; ok {
			if level, err := ParseLevel(levelStr); err == nil {
				return level
			}
		}
	}

	return globalLevel
}

// ParseLevel parses a log level string (case insensitive).
// Supported: debug, info, warn, error.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(strings.ToLower(levelStr)))
	return level, err
}
