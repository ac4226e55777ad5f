package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestGetLevelForName_ExactMatch(t *testing.T) {
	InitLevelConfig(map[string]string{
		"core.db":     "debug",
		"api.graphql": "error",
	}, zapcore.InfoLevel)

	assert.Equal(t, zapcore.DebugLevel, GetLevelForName("core.db"))
	assert.Equal(t, zapcore.ErrorLevel, GetLevelForName("api.graphql"))
}

func TestGetLevelForName_ParentFallback(t *testing.T) {
	InitLevelConfig(map[string]string{
		"core": "warn",
	}, zapcore.InfoLevel)

	// Children inherit from the closest configured ancestor.
	assert.Equal(t, zapcore.WarnLevel, GetLevelForName("core.db"))
	assert.Equal(t, zapcore.WarnLevel, GetLevelForName("core.db.migrate"))
	// Unrelated names use the global default.
	assert.Equal(t, zapcore.InfoLevel, GetLevelForName("api"))
}

func TestGetLevelForName_MostSpecificWins(t *testing.T) {
	InitLevelConfig(map[string]string{
		"core":    "warn",
		"core.db": "debug",
	}, zapcore.InfoLevel)

	assert.Equal(t, zapcore.DebugLevel, GetLevelForName("core.db"))
	assert.Equal(t, zapcore.WarnLevel, GetLevelForName("core.store"))
}

func TestGetLevelForName_EmptyConfig(t *testing.T) {
	InitLevelConfig(nil, zapcore.InfoLevel)

	assert.Equal(t, zapcore.InfoLevel, GetLevelForName("anything"))
	assert.Equal(t, zapcore.InfoLevel, GetLevelForName(""))
}

func TestGetLevelForName_InvalidConfiguredLevel(t *testing.T) {
	InitLevelConfig(map[string]string{
		"core.db": "loud",
		"core":    "error",
	}, zapcore.InfoLevel)

	// An unparsable entry falls through to the parent.
	assert.Equal(t, zapcore.ErrorLevel, GetLevelForName("core.db"))
}

func TestInitLevelConfig_DropsCache(t *testing.T) {
	InitLevelConfig(map[string]string{"core": "debug"}, zapcore.InfoLevel)
	assert.Equal(t, zapcore.DebugLevel, GetLevelForName("core.db"))

	InitLevelConfig(map[string]string{"core": "error"}, zapcore.InfoLevel)
	assert.Equal(t, zapcore.ErrorLevel, GetLevelForName("core.db"))
}
