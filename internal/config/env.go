package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	envParser "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration. Values are layered as defaults, then the
// YAML file named by CONFIG_FILE, then environment variables. dotenvFiles
// (".env" when none are given) are loaded into the environment first and
// never override variables that are already set; missing files are ignored.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overlays environment variables onto cfg. Unset variables leave
// the current value untouched.
func LoadFromEnv(cfg *Config) error {
	if err := envParser.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	return nil
}

// ReadPrivateKey returns the PEM signing key, or nil when none is configured
func (g GCSConfig) ReadPrivateKey() ([]byte, error) {
	if g.PrivateKeyFile == "" {
		return nil, nil
	}
	key, err := os.ReadFile(g.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("config: read gcs private key: %w", err)
	}
	return key, nil
}
