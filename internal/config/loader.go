package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). The file path
// comes from STEMPEL_CONFIG, falling back to ~/.stempel/config.yaml. If
// the file does not exist and STEMPEL_CONFIG was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("STEMPEL_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".stempel", "config.yaml")
		}
	}

	if _, err := os.Stat(path); path != "" && err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
