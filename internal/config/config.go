package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultReservedName is the initiative name that holds miscellaneous tasks.
	DefaultReservedName = "Other Projects"
	// DefaultTimelineWindow is how many updates the timeline shows before "show more".
	DefaultTimelineWindow = 3
	// DefaultDriver is the database/sql driver used when none is configured.
	DefaultDriver = "sqlite3"

	envPrefix  = "PULSE"
	dirName    = ".pulse"
	fileName   = "config.json"
	dbFileName = "pulse.db"
)

// Config represents the flat pulse configuration
type Config struct {
	Version        string `json:"version" mapstructure:"version"`
	UserID         string `json:"user_id,omitempty" mapstructure:"user_id"`
	UserEmail      string `json:"user_email,omitempty" mapstructure:"user_email" validate:"omitempty,email"`
	DatabasePath   string `json:"database_path,omitempty" mapstructure:"database_path"`
	DatabaseDriver string `json:"database_driver,omitempty" mapstructure:"database_driver" validate:"oneof=sqlite3 sqlite"`
	ReservedName   string `json:"reserved_name,omitempty" mapstructure:"reserved_name" validate:"required"`
	TimelineWindow int    `json:"timeline_window,omitempty" mapstructure:"timeline_window" validate:"gte=1"`
	LogLevel       string `json:"log_level,omitempty" mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Dir returns the .pulse directory under dir.
func Dir(dir string) string {
	return filepath.Join(dir, dirName)
}

// Path returns the config file path under dir.
func Path(dir string) string {
	return filepath.Join(Dir(dir), fileName)
}

// DefaultDir returns the directory whose .pulse folder holds config and data.
// PULSE_HOME overrides the user's home directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(envPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// Exists reports whether a config file has been written under dir.
func Exists(dir string) bool {
	_, err := os.Stat(Path(dir))
	return err == nil
}

// Load reads .pulse/config.json from dir, layering PULSE_* environment
// variables (and a .env file in the working directory) over it.
// A missing file is not an error: defaults apply.
func Load(dir string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v, dir)

	if Exists(dir) {
		v.SetConfigFile(Path(dir))
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes config.json to directory
func Save(dir string, cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(Dir(dir), 0755); err != nil {
		return fmt.Errorf("failed to create .pulse dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Default returns the configuration used when nothing has been written yet.
func Default(dir string) *Config {
	return &Config{
		Version:        "1",
		DatabasePath:   filepath.Join(Dir(dir), dbFileName),
		DatabaseDriver: DefaultDriver,
		ReservedName:   DefaultReservedName,
		TimelineWindow: DefaultTimelineWindow,
		LogLevel:       "info",
	}
}

// SignedIn reports whether an identity is configured.
func (c *Config) SignedIn() bool {
	return c.UserID != ""
}

func setDefaults(v *viper.Viper, dir string) {
	d := Default(dir)
	v.SetDefault("version", d.Version)
	v.SetDefault("user_id", "")
	v.SetDefault("user_email", "")
	v.SetDefault("database_path", d.DatabasePath)
	v.SetDefault("database_driver", d.DatabaseDriver)
	v.SetDefault("reserved_name", d.ReservedName)
	v.SetDefault("timeline_window", d.TimelineWindow)
	v.SetDefault("log_level", d.LogLevel)
}
