package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitConfig_Defaults(t *testing.T) {
	viper.Reset()

	InitConfig(writeConfig(t, ""))

	assert.Equal(t, 8080, Cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", Cfg.Server.Host)
	assert.Equal(t, "usergraph.db", Cfg.Database.Path)
	assert.Equal(t, "versioned", Cfg.Database.MigrationMode)
	assert.Equal(t, 5, Cfg.GraphQL.DepthLimit)
	assert.Equal(t, "info", Cfg.Log.Level)
	assert.Equal(t, "production", Cfg.App.Environment)
}

func TestInitConfig_FromFile(t *testing.T) {
	viper.Reset()

	path := writeConfig(t, `
[server]
port = 9090
host = "127.0.0.1"

[database]
path = "/tmp/test.db"
migration_mode = "none"

[graphql]
depth_limit = 7

[app]
environment = "development"
`)

	InitConfig(path)

	assert.Equal(t, 9090, Cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", Cfg.Server.Host)
	assert.Equal(t, "/tmp/test.db", Cfg.Database.Path)
	assert.Equal(t, "none", Cfg.Database.MigrationMode)
	assert.Equal(t, 7, Cfg.GraphQL.DepthLimit)
	assert.Equal(t, "development", Cfg.App.Environment)
}

func TestInitConfig_WithLogLevels(t *testing.T) {
	viper.Reset()

	path := writeConfig(t, `
[log]
level = "info"

[log.levels]
"core.db" = "debug"
"api.graphql" = "warn"
`)

	InitConfig(path)

	assert.Equal(t, "info", Cfg.Log.Level)
	assert.Len(t, Cfg.Log.Levels, 2)
	assert.Equal(t, "debug", Cfg.Log.Levels["core.db"])
	assert.Equal(t, "warn", Cfg.Log.Levels["api.graphql"])
}

func TestInitConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("USERGRAPH_SERVER_PORT", "3000")

	InitConfig(writeConfig(t, ""))

	assert.Equal(t, 3000, Cfg.Server.Port)
}
