package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete crmdesk configuration
type Config struct {
	Directory DirectoryConfig `mapstructure:"directory"`
	Picker    PickerConfig    `mapstructure:"picker"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DirectoryConfig controls where contacts are loaded from
type DirectoryConfig struct {
	// Source is the contacts file (.json, .yaml, .yml, .toml) or SQLite
	// database (.db, .sqlite, .sqlite3). Supports ~ for home directory expansion.
	Source string `mapstructure:"source" validate:"required,max=4096,contact_source"`
	// Watch reloads file sources when they change on disk (default: true)
	Watch bool `mapstructure:"watch"`
}

// PickerConfig controls the recipient selector
type PickerConfig struct {
	// MaxSuggestions caps the suggestion list (default: 10, min: 1, max: 50)
	MaxSuggestions int `mapstructure:"max_suggestions" validate:"min=1,max=50"`
	// Placeholder is shown in an empty input
	Placeholder string `mapstructure:"placeholder" validate:"max=80"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is written to a file (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" validate:"omitempty,log_level"`
	// Dir is the log directory. Empty means <config dir>/logs.
	Dir string `mapstructure:"dir" validate:"max=4096"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Directory: DirectoryConfig{
			Source: "~/.config/crmdesk/contacts.yaml",
			Watch:  true,
		},
		Picker: PickerConfig{
			MaxSuggestions: 10,
			Placeholder:    "Type a name or email",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Directory defaults
	viper.SetDefault("directory.source", defaults.Directory.Source)
	viper.SetDefault("directory.watch", defaults.Directory.Watch)

	// Picker defaults
	viper.SetDefault("picker.max_suggestions", defaults.Picker.MaxSuggestions)
	viper.SetDefault("picker.placeholder", defaults.Picker.Placeholder)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ResolveSource returns the directory source with ~ expanded.
func (d *DirectoryConfig) ResolveSource() string {
	return expandHome(d.Source)
}

// ResolveDir returns the log directory, or "" when logging is disabled.
func (l *LoggingConfig) ResolveDir() string {
	if !l.Enabled {
		return ""
	}
	if l.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	return expandHome(l.Dir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "crmdesk")
	}
	// Fall back to ~/.config/crmdesk
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crmdesk"
	}
	return filepath.Join(home, ".config", "crmdesk")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
