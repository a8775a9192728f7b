// Package config loads the decafc.yaml project file that controls
// diagnostic strictness, color, and debug output.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level decafc.yaml configuration.
type Config struct {
	// Strict makes the driver stop after name resolution when the Namer
	// reported any diagnostic, instead of also running the Typer.
	Strict bool `yaml:"strict,omitempty"`

	// Color forces (true) or disables (false) colorized diagnostic output.
	// A nil value means "auto-detect from the output stream".
	Color *bool `yaml:"color,omitempty"`

	// DebugScopes dumps the resolved scope tree to stderr after a
	// successful Namer/Typer run.
	DebugScopes bool `yaml:"debugScopes,omitempty"`

	// Entry is the source file to compile when none is given on the
	// command line.
	Entry string `yaml:"entry,omitempty"`
}

// Default returns the configuration used when no decafc.yaml is found.
func Default() *Config {
	return &Config{}
}

// Load reads and parses a decafc.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses decafc.yaml content from bytes. path is used only in error
// messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches for decafc.yaml starting from dir and walking up through
// parent directories. It returns "" with a nil error when no config file
// exists anywhere above dir.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "decafc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadOrDefault loads decafc.yaml from dir (or an ancestor), falling back
// to Default() when no config file is present.
func LoadOrDefault(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
