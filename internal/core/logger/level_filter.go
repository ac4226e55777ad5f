// Package logger provides logging utilities for the application.
package logger

import (
	"go.uber.org/zap/zapcore"
)

// levelFilterCore wraps a zapcore.Core to filter by a per-logger level.
type levelFilterCore struct {
	zapcore.Core
	level zapcore.Level
}

// Enabled reports whether the given level should be logged.
func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.level
}

// Check implements zapcore.Core with the custom level filter.
// It must be overridden because the embedded Check() would consult the
// embedded core's Enabled(), not the one defined above.
func (c *levelFilterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

var (
	_ zapcore.Core         = (*levelFilterCore)(nil)
	_ zapcore.LevelEnabler = (*levelFilterCore)(nil)
)
