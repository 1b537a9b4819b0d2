// Package theme orchestrates a whole cursor theme build: it loads the
// config.toml at the theme root, runs the per-cursor decode pipelines in
// parallel, invokes xcursorgen per target, links aliases, and writes the
// index.theme file.
package theme

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var ErrDuplicateTargetName = errors.New("duplicate target name")

// CursorSpec is one [[cursor]] table from config.toml.
type CursorSpec struct {
	Name    string   `toml:"name"`
	File    string   `toml:"file"`
	Aliases []string `toml:"aliases"`
}

// Config is the theme configuration. Scale defaults to 1.
type Config struct {
	Scale   float64      `toml:"scale"`
	Cursors []CursorSpec `toml:"cursor"`
}

// LoadConfig reads and validates a config.toml.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects the whole batch before any file is written: every cursor
// needs a name and a source file, the scale must be positive, and target
// names and aliases must be pairwise disjoint across the batch since they all
// land in one output directory.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}

	owner := make(map[string]string)
	for _, cur := range c.Cursors {
		if cur.Name == "" {
			return fmt.Errorf("cursor with source %q has no name", cur.File)
		}
		if cur.File == "" {
			return fmt.Errorf("cursor %q has no source file", cur.Name)
		}
		names := append([]string{cur.Name}, cur.Aliases...)
		for _, n := range names {
			if prev, ok := owner[n]; ok {
				return fmt.Errorf("%w: %q claimed by both %q and %q", ErrDuplicateTargetName, n, prev, cur.Name)
			}
			owner[n] = cur.Name
		}
	}
	return nil
}
