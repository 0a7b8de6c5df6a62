// Package config resolves elsago credentials and settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings needed to construct a client.
type Config struct {
	APIKey    string `yaml:"api_key,omitempty"`
	InstToken string `yaml:"inst_token,omitempty"`
}

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "elsago"
	// File is the config file name.
	File = "config.yml"

	// EnvAPIKey and EnvInstToken override the config file when set.
	EnvAPIKey    = "ELSAGO_API_KEY"
	EnvInstToken = "ELSAGO_INST_TOKEN"
)

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/elsago/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// Load reads the config file and applies .env and environment
// overrides, in that order of increasing precedence. A missing config
// file is not an error.
func Load() (*Config, error) {
	// Pick up ELSAGO_* from a local .env if present.
	_ = godotenv.Load()

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvInstToken); v != "" {
		cfg.InstToken = v
	}

	return cfg, nil
}

// LoadFile reads the config file only, without environment overrides.
// Used when editing the file so an environment value isn't baked in.
func LoadFile() (*Config, error) {
	cfg := &Config{}
	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	// Credentials file, keep it user-readable only.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Mask redacts a credential for display, keeping a short prefix.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
