// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil so
// callers can tell them apart from zero values.
type FileConfig struct {
	Synth   SynthConfig   `toml:"synth"`
	Catalog CatalogConfig `toml:"catalog"`
	Log     LogConfig     `toml:"log"`
	Import  ImportConfig  `toml:"import"`
}

type SynthConfig struct {
	Ruleset *string `toml:"ruleset"`
	Mode    *string `toml:"mode"`
	Format  *string `toml:"format"`
}

type CatalogConfig struct {
	Path *string `toml:"path"`
}

type LogConfig struct {
	Level *string `toml:"level"`
}

type ImportConfig struct {
	Workers *int `toml:"workers"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
