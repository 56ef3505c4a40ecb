package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config stores process-level settings: listen addresses, the request
// signing secret and notification dispatch sizing. Core ledger behavior does
// not depend on any of these.
type Config struct {
	ServerAddr       string `mapstructure:"SERVER_ADDR"`
	MetricsAddr      string `mapstructure:"METRICS_ADDR"`
	SecretKey        string `mapstructure:"SECRET_KEY"`
	DispatchWorkers  int    `mapstructure:"DISPATCH_WORKERS"`
	DispatchQueue    int    `mapstructure:"DISPATCH_QUEUE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	SeedDemoAccounts bool   `mapstructure:"SEED_DEMO_ACCOUNTS"`
}

// Load reads configuration from environment variables, falling back to a
// local .env file and built-in defaults.
func Load() (Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("METRICS_ADDR", ":9090")
	viper.SetDefault("SECRET_KEY", "dev-secret-key")
	viper.SetDefault("DISPATCH_WORKERS", 3)
	viper.SetDefault("DISPATCH_QUEUE", 1000)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEED_DEMO_ACCOUNTS", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
