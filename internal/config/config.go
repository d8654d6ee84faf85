// Package config loads ztags settings from an optional .ztags.kdl file and
// supplies the defaults CLI flags are layered on top of.
package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

type Config struct {
	Output  string   // tags output path; empty writes to stdout
	Sort    bool     // sort tag lines before writing
	Recurse bool     // expand directory arguments
	Include []string // doublestar globs applied when recursing
	Exclude []string // doublestar globs removed when recursing
	Watch   Watch
}

type Watch struct {
	Enabled    bool
	DebounceMs int // quiet time before a regeneration after a change event
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		Include: []string{"**/*.zig"},
		Watch:   Watch{DebounceMs: 250},
	}
}

// Load reads path if it exists and overlays it onto the defaults. A missing
// file is not an error; CLI flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := parseKDL(cfg, string(content)); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the rest of the run cannot honor.
func (c *Config) Validate() error {
	if c.Watch.DebounceMs <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %dms", c.Watch.DebounceMs)
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if c.Watch.Enabled && c.Output == "" {
		return fmt.Errorf("watch mode requires an output file")
	}
	return nil
}
