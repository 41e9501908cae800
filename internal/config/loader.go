package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load builds the configuration from, in rising priority, env-default
// tags, the file named by CONFIG_PATH (./config.yaml when unset) and the
// environment. The file may be YAML or a .env file; cleanenv picks the
// parser from the extension. Only an explicitly named file must exist.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if path == "" {
		path, explicit = defaultConfigPath, false
	}

	cfg, err := read(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func read(path string, mustExist bool) (*Config, error) {
	var cfg Config

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !mustExist:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}
	return &cfg, nil
}

// Usage writes every recognised environment variable with its default.
func Usage(w io.Writer) {
	var cfg Config
	header := "andys-backend reads these environment variables (CONFIG_PATH names an optional YAML or .env file):"
	cleanenv.FUsage(w, &cfg, &header)()
}
