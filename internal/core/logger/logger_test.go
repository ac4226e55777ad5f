package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCapturedLogger swaps the package logger for one writing into buf and
// restores it on cleanup.
func newCapturedLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)

	original := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = original })

	return &buf
}

func TestNamed_LevelFiltering(t *testing.T) {
	buf := newCapturedLogger(t)

	InitLevelConfig(map[string]string{
		"core.db": "warn",
	}, zapcore.InfoLevel)

	dbLogger := Named("core.db")
	dbLogger.Debug("filtered out")
	dbLogger.Info("filtered out too")
	dbLogger.Warn("kept")

	output := buf.String()
	assert.NotContains(t, output, "filtered out")
	assert.Contains(t, output, "kept")
}

func TestNamed_GlobalDefault(t *testing.T) {
	buf := newCapturedLogger(t)

	InitLevelConfig(nil, zapcore.InfoLevel)

	apiLogger := Named("api")
	apiLogger.Debug("below default")
	apiLogger.Info("at default")

	output := buf.String()
	assert.NotContains(t, output, "below default")
	assert.Contains(t, output, "at default")
}

func TestNamed_CarriesName(t *testing.T) {
	buf := newCapturedLogger(t)

	InitLevelConfig(nil, zapcore.DebugLevel)

	Named("api.graphql").Info("hello")

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Equal(t, "api.graphql", gjson.Get(line, "logger").String())
	assert.Equal(t, "hello", gjson.Get(line, "msg").String())
}

func TestNamed_BeforeInit(t *testing.T) {
	original := logger
	logger = nil
	t.Cleanup(func() { logger = original })

	assert.NotPanics(t, func() {
		Named("early").Info("dropped")
	})
}
