// Package config loads the optional TOML settings file. Everything in it
// doubles as the default for the matching CLI flag, so a settings file
// only needs the keys that differ from the built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults the plot command starts from. Flags given on
// the command line override these.
type Config struct {
	OutDir    string   `toml:"out_dir"`
	Formats   []string `toml:"formats"`
	Topology  string   `toml:"topology"`
	ProbeTopK int      `toml:"probe_top_k"`
}

// Default returns the built-in settings used when no file is given.
func Default() Config {
	return Config{
		OutDir:    "plots",
		Formats:   []string{"png"},
		Topology:  "unknown",
		ProbeTopK: 20,
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged; a missing or malformed file is an error, since a settings
// file was explicitly asked for.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
