package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root application configuration.
type Config struct {
	DBPath   string    `yaml:"db_path"  env:"STEMPEL_DB"`
	User     string    `yaml:"user"     env:"STEMPEL_USER"`
	Timezone string    `yaml:"timezone" env:"STEMPEL_TZ" env-default:"Europe/Berlin"`
	Log      LogConfig `yaml:"log"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"STEMPEL_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"STEMPEL_LOG_FORMAT" env-default:"text"`
}

// Validate resolves derived fields and fills the DB path default, which
// depends on the home directory and cannot live in a struct tag.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.DBPath = filepath.Join(home, ".stempel", "stempel.db")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: must be debug, info, warn, or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: must be text or json", c.Log.Format)
	}
	return nil
}
