package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int    `mapstructure:"port"`
		Host string `mapstructure:"host"`
	} `mapstructure:"server"`
	Database struct {
		Path          string `mapstructure:"path"`
		MigrationMode string `mapstructure:"migration_mode"`
	} `mapstructure:"database"`
	GraphQL struct {
		DepthLimit int `mapstructure:"depth_limit"`
	} `mapstructure:"graphql"`
	Log struct {
		Level  string            `mapstructure:"level"`
		Levels map[string]string `mapstructure:"levels"`
	} `mapstructure:"log"`
	App struct {
		Environment string `mapstructure:"environment"`
	} `mapstructure:"app"`
}

var Cfg Config

func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("USERGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("Error reading config file:", err)
			os.Exit(1)
		}
		// Config file not found; defaults and environment apply.
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		fmt.Println("Unable to decode into struct:", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("database.path", "usergraph.db")
	viper.SetDefault("database.migration_mode", "versioned")
	viper.SetDefault("graphql.depth_limit", 5)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("app.environment", "production")
}

func BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Int("port", 8080, "Port to run the server on")
	_ = viper.BindPFlag("server.port", cmd.PersistentFlags().Lookup("port"))
}
