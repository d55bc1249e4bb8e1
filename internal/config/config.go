// Package config loads mathgen settings from flags, the environment
// (MATHGEN_*) and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MATHGEN_DB.
const EnvPrefix = "MATHGEN"

// Config holds the CLI and service settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error, disabled.
	LogLevel string `mapstructure:"log-level"`
	LogJSON  bool   `mapstructure:"log-json"`

	// DBPath overrides the default history database location.
	DBPath string `mapstructure:"db"`

	// Workers bounds concurrent generation in worksheets.
	Workers int `mapstructure:"workers"`

	// Seed makes runs reproducible. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// Format is the output format: text, json or yaml.
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Workers:  4,
		Format:   "text",
	}
}

// Load reads configuration into a Config. Precedence, highest first: flags
// bound to v, MATHGEN_* environment variables, the config file, defaults.
// configFile may be empty, in which case $XDG_CONFIG_HOME/mathgen/config.yaml
// (or ~/.config/mathgen/config.yaml) is read if it exists.
func Load(v *viper.Viper, configFile string) (Config, error) {
	defaults := DefaultConfig()
	v.SetDefault("log-level", defaults.LogLevel)
	v.SetDefault("log-json", defaults.LogJSON)
	v.SetDefault("db", defaults.DBPath)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("format", defaults.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []string
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Sprintf("log-level must be one of debug, info, warn, error, disabled, got %q", c.LogLevel))
	}
	if c.Workers < 1 || c.Workers > 64 {
		errs = append(errs, fmt.Sprintf("workers must be between 1 and 64, got %d", c.Workers))
	}
	switch c.Format {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Sprintf("format must be one of text, json, yaml, got %q", c.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ConfigFile returns the path of the config file that was read, if any.
func ConfigFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mathgen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mathgen"), nil
}
