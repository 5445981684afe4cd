package config

import (
	"os"
	"path/filepath"
)

const appName = "hitstats"

// xdgDir resolves an XDG base directory. Relative values in env are ignored
// and the home-relative fallback is used instead.
func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); filepath.IsAbs(v) {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

// DefaultCatalogPath returns where imported beatmap summaries are kept.
func DefaultCatalogPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appName, "catalog.db")
}
