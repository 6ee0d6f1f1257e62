// Package config loads calculator settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// Config holds settings shared by the command line and the interactive shell.
type Config struct {
	// Prompt is printed before each line the shell reads.
	Prompt string `toml:"prompt" yaml:"prompt"`
	// Intro is printed once when the shell starts.
	Intro string `toml:"intro" yaml:"intro"`
	// Format is a printf verb for results, or "human" for digit grouping.
	Format string `toml:"format" yaml:"format"`
	// Minimal restricts expressions to numbers and + - * / ^.
	Minimal bool `toml:"minimal" yaml:"minimal"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Constants are added to the default names.
	Constants map[string]float64 `toml:"constants" yaml:"constants"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Prompt:   ">>> ",
		Intro:    "Basic syntax: 2*sin(pi)+1-(3/4)*5^6. Type :functions for a list of functions.",
		Format:   "%g",
		LogLevel: "warn",
	}
}

// Load reads a config file. The format is chosen by extension: .toml, or
// .yaml or .yml. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q for %s", ext, path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that constant names are usable in expressions.
func (c Config) Validate() error {
	for name := range c.Constants {
		if !isIdent(name) {
			return fmt.Errorf("invalid constant name %q", name)
		}
	}
	return nil
}

// Frame returns a copy of base with the configured constants added. Constants
// replace names in base.
func (c Config) Frame(base calc.Frame) calc.Frame {
	f := base.Clone()
	for k, v := range c.Constants {
		f[k] = calc.Number(v)
	}
	return f
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
