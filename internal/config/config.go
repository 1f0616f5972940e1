package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Archive           string         `mapstructure:"archive"`
	AudioGroups       []string       `mapstructure:"audio_groups"`
	Output            string         `mapstructure:"output"`
	Catalog           string         `mapstructure:"catalog"`
	Assets            []string       `mapstructure:"assets"`
	Workers           int            `mapstructure:"workers"`
	BackgroundColumns map[string]int `mapstructure:"background_columns"`
	LogLevel          string         `mapstructure:"log_level"`
	LogFormat         string         `mapstructure:"log_format"`
}

// New returns a viper instance carrying the default configuration
func New() *viper.Viper {
	v := viper.New()

	// Set defaults
	v.SetDefault("archive", "data.win")
	v.SetDefault("audio_groups", []string{})
	v.SetDefault("output", "assets")
	v.SetDefault("catalog", "")
	v.SetDefault("assets", AllAssets)
	v.SetDefault("workers", 1)
	v.SetDefault("background_columns", map[string]int{})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetEnvPrefix("WINEXTRACT")
	v.AutomaticEnv()

	return v
}

// Load initializes and loads configuration from file
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// Config file handling
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName("winextract")
		v.SetConfigType("yaml")
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the decoder cannot reject on its own
func (c *Config) Validate() error {
	if c.Archive == "" {
		return fmt.Errorf("archive path cannot be empty")
	}

	if err := validateAssets(c.Assets); err != nil {
		return fmt.Errorf("invalid asset configuration: %w", err)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	for name, cols := range c.BackgroundColumns {
		if cols <= 0 {
			return fmt.Errorf("background_columns: %s must be positive, got %d", name, cols)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level '%s'", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format '%s'", c.LogFormat)
	}

	return nil
}
