package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grilled-pork-chop/civitest/internal/store"
)

// Config is the operator-editable configuration. Exam parameters (question
// count, time limit, pass threshold) are fixed by the exam itself and do not
// appear here.
type Config struct {
	// Bank lists the question bank JSON files to merge.
	Bank struct {
		Files []string `yaml:"files"`
	} `yaml:"bank"`
	Storage struct {
		// DBPath overrides the default database location.
		DBPath string `yaml:"db_path"`
		// MaxHistoryBytes caps the persisted history blob.
		// 0 means the built-in default.
		MaxHistoryBytes int `yaml:"max_history_bytes"`
	} `yaml:"storage"`
}

// Load reads YAML config from path. A missing file yields defaults; a
// present but malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DefaultPath resolves the config file location in priority order:
// 1. CIVITEST_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/civitest/config.yaml
// 3. ~/.config/civitest/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("CIVITEST_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "civitest", "config.yaml"), nil
}

// BankFiles returns the configured bank files, falling back to
// questions/*.json next to the database when none are configured.
func (c Config) BankFiles() ([]string, error) {
	if len(c.Bank.Files) > 0 {
		return c.Bank.Files, nil
	}
	dbPath, err := c.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dbPath), "questions", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob default bank files: %w", err)
	}
	return matches, nil
}

// ResolveDBPath returns the configured database path or the default chain.
func (c Config) ResolveDBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, store.EnsureDir(c.Storage.DBPath)
	}
	return store.DefaultDBPath()
}
