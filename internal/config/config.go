// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the compositor configuration. Most behavior is scripted
// from Lua; this file only covers what must be known before the interpreter
// runs.
type Config struct {
	General General `mapstructure:"general"`
	Input   Input   `mapstructure:"input"`
	Logging Logging `mapstructure:"logging"`

	// Autostart commands are spawned once the event loop is running.
	Autostart [][]string `mapstructure:"autostart"`
}

// General contains workspace and layout settings
type General struct {
	Workspaces int `mapstructure:"workspaces"`
	GapsIn     int `mapstructure:"gaps_in"`
	GapsOut    int `mapstructure:"gaps_out"`

	// InitFile is the Lua script loaded at startup. Empty means the
	// embedded default script.
	InitFile string `mapstructure:"init_file"`
}

// Input contains the initial keyboard settings; scripts can change them later
// through input.setup.
type Input struct {
	RepeatRate  int `mapstructure:"repeat_rate"`
	RepeatDelay int `mapstructure:"repeat_delay"`

	Xkb Xkb `mapstructure:"xkb"`
}

// Xkb mirrors the xkb rule set used to compile the keymap
type Xkb struct {
	Layout  string `mapstructure:"layout"`
	Rules   string `mapstructure:"rules"`
	Model   string `mapstructure:"model"`
	Options string `mapstructure:"options"`
	Variant string `mapstructure:"variant"`
}

// Logging contains logging settings
type Logging struct {
	FileLogging bool   `mapstructure:"file_logging"`
	LogLevel    string `mapstructure:"log_level"`
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		General: General{
			Workspaces: 5,
			GapsIn:     0,
			GapsOut:    0,
		},
		Input: Input{
			RepeatRate:  25,
			RepeatDelay: 600,
		},
		Logging: Logging{
			FileLogging: true,
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("strata")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "strata"))
		} else if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "strata"))
		}
		viper.AddConfigPath("/etc/strata")
	}

	// Set defaults - individual fields so file values merge per-field
	viper.SetDefault("general.workspaces", DefaultConfig.General.Workspaces)
	viper.SetDefault("general.gaps_in", DefaultConfig.General.GapsIn)
	viper.SetDefault("general.gaps_out", DefaultConfig.General.GapsOut)
	viper.SetDefault("general.init_file", DefaultConfig.General.InitFile)

	viper.SetDefault("input.repeat_rate", DefaultConfig.Input.RepeatRate)
	viper.SetDefault("input.repeat_delay", DefaultConfig.Input.RepeatDelay)
	viper.SetDefault("input.xkb.layout", DefaultConfig.Input.Xkb.Layout)
	viper.SetDefault("input.xkb.rules", DefaultConfig.Input.Xkb.Rules)
	viper.SetDefault("input.xkb.model", DefaultConfig.Input.Xkb.Model)
	viper.SetDefault("input.xkb.options", DefaultConfig.Input.Xkb.Options)
	viper.SetDefault("input.xkb.variant", DefaultConfig.Input.Xkb.Variant)

	viper.SetDefault("logging.file_logging", DefaultConfig.Logging.FileLogging)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if cfg.General.Workspaces < 1 {
		cfg.General.Workspaces = 1
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// GetConfigPath returns the path the config file is (or would be) loaded from
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "strata", "strata.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/strata/strata.toml"
	}
	return filepath.Join(home, ".config", "strata", "strata.toml")
}

// LogFilePath returns the log file location under the user's state directory
func LogFilePath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "strata", "latest.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "strata", "latest.log")
	}
	return filepath.Join(home, ".local", "state", "strata", "latest.log")
}
