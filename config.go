package treekit

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treekit/treekit/ltree"
)

// Config carries the planner settings that deployments tend to vary:
// the path root segment and the order-key jitter policy. It is typically
// loaded from a YAML file checked in next to the consuming service.
//
// Example file:
//
//	root: workspace_7
//	jitter_length: 6
type Config struct {
	// Root is the leading segment of every generated path. Empty means
	// ltree.DefaultRoot.
	Root string `yaml:"root,omitempty"`

	// JitterLength is the number of random symbols appended to generated
	// order keys. Zero means the default (fracdex.DefaultJitterLength);
	// set DisableJitter to turn jitter off entirely.
	JitterLength int `yaml:"jitter_length,omitempty"`

	// DisableJitter turns off the random key suffix. Only sensible for
	// single-writer deployments or deterministic replay.
	DisableJitter bool `yaml:"disable_jitter,omitempty"`
}

// DefaultConfig returns the configuration New would use with no options.
func DefaultConfig() Config {
	return Config{
		Root:         ltree.DefaultRoot,
		JitterLength: 4,
	}
}

// Validate checks internal consistency and applies no defaults.
func (c *Config) Validate() error {
	if c.Root != "" && (strings.ContainsRune(c.Root, '.') || !ltree.IsValidPath(c.Root)) {
		return fmt.Errorf("root %q is not a valid path segment", c.Root)
	}
	if c.JitterLength < 0 {
		return fmt.Errorf("jitter_length must not be negative, got %d", c.JitterLength)
	}
	return nil
}

// applyDefaults fills zero values in place.
func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = ltree.DefaultRoot
	}
	if c.JitterLength == 0 && !c.DisableJitter {
		c.JitterLength = DefaultConfig().JitterLength
	}
}

// LoadConfig reads and validates a YAML configuration file, filling
// defaults for omitted fields.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}
