// Package config loads luma settings from the config file, LUMA_* environment
// variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for luma
type Config struct {
	DataDir   string    `mapstructure:"data_dir"`
	Store     string    `mapstructure:"store"`
	ExportDir string    `mapstructure:"export_dir"`
	Theme     string    `mapstructure:"theme"`
	Log       LogConfig `mapstructure:"log"`

	// ConfigFile is the file that was read, empty when none was found
	ConfigFile string `mapstructure:"-"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Setting keys
const (
	KeyDataDir   = "data_dir"
	KeyStore     = "store"
	KeyExportDir = "export_dir"
	KeyTheme     = "theme"
	KeyLogLevel  = "log.level"
	KeyLogFile   = "log.file"
)

// Options controls where Load looks
type Options struct {
	// ConfigFile, when set, is read instead of the XDG config file and must exist
	ConfigFile string
	// Overrides take precedence over every other source; typically set flags
	Overrides map[string]string
}

// Load resolves configuration. Precedence (highest to lowest):
// 1. Overrides (command-line flags)
// 2. Environment variables (LUMA_DATA_DIR, LUMA_STORE, ..., LUMA_DIR for data_dir)
// 3. Config file ($XDG_CONFIG_HOME/luma/config.yaml)
// 4. Built-in defaults
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(UserConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading user config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("LUMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv(KeyDataDir, "LUMA_DATA_DIR", "LUMA_DIR")

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.ExportDir = expandHome(cfg.ExportDir)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Store {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid store %q (want json, sqlite or memory)", c.Store)
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q (want auto, light or dark)", c.Theme)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// TemplatesDir holds user YAML templates
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.DataDir, "templates")
}

// LogFile returns the configured log file, defaulting to <data_dir>/logs/luma.log
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "logs", "luma.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyStore, "json")
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyTheme, "auto")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".luma"
	}
	return filepath.Join(home, ".luma")
}

// UserConfigDir returns the XDG config directory for luma
func UserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "luma")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "luma")
	}
	return filepath.Join(home, ".config", "luma")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
