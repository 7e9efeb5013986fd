package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that selects the bookbinder home.
const HomeEnv = "BOOKBINDER_HOME"

// GetBookbinderHome returns the bookbinder home directory
// Priority order:
//  1. BOOKBINDER_HOME environment variable (if set)
//  2. .bookbinder under the current working directory
//
// The directory is created if it doesn't exist
func GetBookbinderHome() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		home = filepath.Join(cwd, ".bookbinder")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create bookbinder home directory: %w", err)
	}
	return home, nil
}

// HistoryDBPath returns the history database path for cfg, defaulting to
// $BOOKBINDER_HOME/history.db
func HistoryDBPath(cfg *Config) (string, error) {
	if cfg != nil && cfg.History.DBPath != "" {
		return cfg.History.DBPath, nil
	}

	home, err := GetBookbinderHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
