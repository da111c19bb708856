package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		URL string `mapstructure:"url" yaml:"-"` // Never serialize credentials
	} `mapstructure:"database" yaml:"database"`

	Ingest struct {
		Unattended  bool   `mapstructure:"unattended" yaml:"unattended"`
		RefdataPath string `mapstructure:"refdata_path" yaml:"refdata_path"`
	} `mapstructure:"ingest" yaml:"ingest"`

	Telegram struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Token   string `mapstructure:"token" yaml:"-"`
		ChatID  int64  `mapstructure:"chat_id" yaml:"chat_id"`
	} `mapstructure:"telegram" yaml:"telegram"`

	Wealthsimple struct {
		CreditURL string `mapstructure:"credit_url" yaml:"credit_url"`
	} `mapstructure:"wealthsimple" yaml:"wealthsimple"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.card-ingest")
	v.AddConfigPath(".card-ingest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARDINGEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and environment variables.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Conventional unprefixed names for credentials.
	if err := v.BindEnv("database.url", "DATABASE_URL", "CARDINGEST_DATABASE_URL"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}
	if err := v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN", "CARDINGEST_TELEGRAM_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind TELEGRAM_BOT_TOKEN environment variable: %v\n", err)
	}
	if err := v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID", "CARDINGEST_TELEGRAM_CHAT_ID"); err != nil {
		fmt.Printf("Warning: failed to bind TELEGRAM_CHAT_ID environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.url", "")

	v.SetDefault("ingest.unattended", false)
	v.SetDefault("ingest.refdata_path", "")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("wealthsimple.credit_url", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Telegram.Enabled {
		if config.Telegram.Token == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN required when telegram alerts are enabled")
		}
		if config.Telegram.ChatID == 0 {
			return fmt.Errorf("TELEGRAM_CHAT_ID required when telegram alerts are enabled")
		}
	}

	return nil
}
