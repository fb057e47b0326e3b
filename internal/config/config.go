// Package config loads user preferences: default behavior flags, port
// aliases and theme colors. A missing or broken file degrades to the
// built-in defaults; configuration can never fail a command.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the full on-disk configuration.
type Config struct {
	Defaults Defaults          `yaml:"defaults"`
	Aliases  map[string]uint16 `yaml:"aliases"`
	Theme    Theme             `yaml:"theme"`
}

// Defaults holds default behavior settings.
type Defaults struct {
	// Signal is the kill signal when none is requested: SIGTERM or SIGKILL.
	Signal string `yaml:"signal"`
	// Confirm biases the caller's confirmation policy before killing.
	Confirm bool `yaml:"confirm"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
	// Format is the default output format.
	Format string `yaml:"format"`
}

// Theme customizes output colors.
type Theme struct {
	BannerColor  string `yaml:"banner_color"`
	SuccessColor string `yaml:"success_color"`
	WarningColor string `yaml:"warning_color"`
	ErrorColor   string `yaml:"error_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Signal:  "SIGTERM",
			Confirm: true,
			Color:   "auto",
			Format:  "pretty",
		},
		Aliases: map[string]uint16{},
		Theme: Theme{
			BannerColor:  "cyan",
			SuccessColor: "green",
			WarningColor: "yellow",
			ErrorColor:   "red",
		},
	}
}

// Path returns the per-user config file location.
func Path() string {
	if runtime.GOOS == "windows" {
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return ""
		}
		return filepath.Join(appdata, "portreap", "config.yaml")
	}
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "portreap", "config.yaml")
}

// Load reads the config file, falling back to defaults on any problem.
func Load() Config {
	path := Path()
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	return parse(data)
}

func parse(data []byte) Config {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Debug("config file unparsable, using defaults", "err", err)
		return Default()
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]uint16{}
	}
	return cfg
}

// ResolveAlias maps a configured alias to its port. ok is false when
// the name is not an alias.
func (c Config) ResolveAlias(name string) (uint16, bool) {
	port, ok := c.Aliases[name]
	return port, ok
}
