// Package config holds the terrain server configuration: defaults, an
// optional YAML config file, and CLI flag overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration. Chunk geometry and sea level are
// compile-time constants of the terrain package, not configuration: they
// participate in noise frequencies and must match across every compatible
// generator instance.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Seed       int32  `yaml:"seed"`
	DataDir    string `yaml:"data_dir"`

	// PregenRadius > 0 generates the square of chunks around the origin
	// at startup, using PregenWorkers goroutines.
	PregenRadius  int `yaml:"pregen_radius"`
	PregenWorkers int `yaml:"pregen_workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:    ":8420",
		Seed:          0,
		DataDir:       "./data",
		PregenRadius:  0,
		PregenWorkers: 4,
	}
}

// Load reads a YAML config file into cfg. A missing file leaves cfg
// unchanged.
func Load(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["listen"] {
		cfg.ListenAddr = fromFile.ListenAddr
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["data-dir"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["pregen-radius"] {
		cfg.PregenRadius = fromFile.PregenRadius
	}
	if !explicitFlags["pregen-workers"] {
		cfg.PregenWorkers = fromFile.PregenWorkers
	}
}
