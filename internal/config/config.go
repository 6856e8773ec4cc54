package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for airless
type Config struct {
	Source          SourceConfig
	RefreshInterval int // seconds between reloads in watch mode
	StrictJoin      bool
	Output          OutputConfig
	Log             LogConfig
}

// SourceConfig locates the two payloads. Base is an http(s) URL or a local directory.
type SourceConfig struct {
	Base     string
	Airports string
	SSID     string
	Timeout  int // seconds
}

// OutputConfig controls how loaded airports are printed
type OutputConfig struct {
	Format string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("source.base", "public")
	v.SetDefault("source.airports", "airports.json")
	v.SetDefault("source.ssid", "ssid.json")
	v.SetDefault("source.timeout", 10)
	v.SetDefault("refresh_interval", 300)
	v.SetDefault("strict_join", false)
	v.SetDefault("output.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/airless")
	v.AddConfigPath(".")

	if configPath := os.Getenv("AIRLESS_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// A missing config file is fine, defaults and env vars still apply.
	// Logger isn't initialized yet so nothing is logged here.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("AIRLESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Source: SourceConfig{
			Base:     v.GetString("source.base"),
			Airports: v.GetString("source.airports"),
			SSID:     v.GetString("source.ssid"),
			Timeout:  v.GetInt("source.timeout"),
		},
		RefreshInterval: v.GetInt("refresh_interval"),
		StrictJoin:      v.GetBool("strict_join"),
		Output: OutputConfig{
			Format: v.GetString("output.format"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Source.Base == "" {
		return fmt.Errorf("source.base is required")
	}

	if cfg.Source.Airports == "" || cfg.Source.SSID == "" {
		return fmt.Errorf("source.airports and source.ssid are required")
	}

	if cfg.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be greater than 0")
	}

	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be greater than 0")
	}

	validOutputFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validOutputFormats[strings.ToLower(cfg.Output.Format)] {
		return fmt.Errorf("invalid output format: %s (must be text or json)", cfg.Output.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
