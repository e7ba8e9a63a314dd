// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Database names one SQLite database file.
type Database struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Config represents the application configuration: the set of known
// databases and which one opens by default.
type Config struct {
	Default   string     `yaml:"default"`
	Databases []Database `yaml:"databases"`
}

// DefaultConfig returns a config with a single database under the user data
// directory.
func DefaultConfig(dbPath string) *Config {
	return &Config{
		Default: "default",
		Databases: []Database{
			{Name: "default", Path: dbPath},
		},
	}
}

// Path returns the full path to the configuration file, creating the config
// directory if needed.
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}

	appDir := filepath.Join(dir, "tudo")
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(appDir, "config.yaml"), nil
}

// Load reads the configuration from path. If the file doesn't exist, it
// returns a default configuration pointing at fallbackDB.
func Load(path, fallbackDB string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(fallbackDB), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(cfg.Databases) == 0 {
		cfg.Databases = DefaultConfig(fallbackDB).Databases
	}
	if cfg.Default == "" {
		cfg.Default = cfg.Databases[0].Name
	}
	return cfg, nil
}

// LoadOrInit loads the configuration from path, writing the generated
// default config file on first run so the user has something to edit.
func LoadOrInit(path, fallbackDB string) (*Config, error) {
	cfg, err := Load(path, fallbackDB)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Resolve returns the database with the given name, or the default database
// when name is empty.
func (c *Config) Resolve(name string) (Database, error) {
	if name == "" {
		name = c.Default
	}
	for _, d := range c.Databases {
		if d.Name == name {
			return d, nil
		}
	}
	return Database{}, fmt.Errorf("no database named %q in config", name)
}
