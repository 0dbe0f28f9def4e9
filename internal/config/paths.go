package config

import (
	"os"
	"path/filepath"

	"github.com/focusfoundry/tempo/internal/errors"
)

// TempoHome is the name of both the global (~/.tempo) and project
// (.tempo) configuration directories.
const TempoHome = ".tempo"

// GlobalConfigDir returns the path to the global configuration
// directory, typically ~/.tempo.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, TempoHome), nil
}

// GlobalConfigPath returns the full path to the global configuration
// file, typically ~/.tempo/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project
// configuration file, always .tempo/config.yaml.
func ProjectConfigPath() string {
	return filepath.Join(TempoHome, "config.yaml")
}

// DataDir resolves the store directory: the configured one when set,
// otherwise ~/.tempo/data.
func DataDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Data.Dir != "" {
		return cfg.Data.Dir, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}
