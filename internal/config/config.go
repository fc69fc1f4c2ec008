// Package config handles the assistant's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BackendSnapshot stores the book as a YAML snapshot file.
const BackendSnapshot = "snapshot"

// BackendSQLite stores the book in a single-file SQLite database.
const BackendSQLite = "sqlite"

// Config holds all assistant configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
}

// Storage selects the persistence backend and its data file.
type Storage struct {
	Backend string `yaml:"backend"` // "snapshot" | "sqlite"
	Path    string `yaml:"path"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: BackendSnapshot,
			Path:    "addressbook.yaml",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads the YAML config file at path. If the file does not exist,
// defaults are returned without error. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the assistant cannot work
// with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSnapshot, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage path must not be empty")
	}
	return nil
}
