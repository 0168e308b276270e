// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Import struct {
		// BalanceTolerance is the accepted debit/credit discrepancy in
		// currency units.
		BalanceTolerance float64 `mapstructure:"balance_tolerance" yaml:"balance_tolerance"`
		// DefaultSeries is used for vouchers without a series id.
		DefaultSeries string `mapstructure:"default_series" yaml:"default_series"`
	} `mapstructure:"import" yaml:"import"`

	Store struct {
		// LedgerFile is the YAML ledger fixture the CLI resolves against.
		LedgerFile string `mapstructure:"ledger_file" yaml:"ledger_file"`
	} `mapstructure:"store" yaml:"store"`
}

// LoadEnv loads variables from a .env file when one exists. Missing files
// are not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then a config file, then SIE_-prefixed environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sie-import")
	v.AddConfigPath(".sie-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SIE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)
	v.SetDefault("import.balance_tolerance", 0.01)
	v.SetDefault("import.default_series", "A")
	v.SetDefault("store.ledger_file", "ledger.yaml")
}

// ConfigureLogging builds the shared logrus logger from the configuration.
func ConfigureLogging(cfg *Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
