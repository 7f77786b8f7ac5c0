// Package config loads the optional project configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orcac/orcatool/internal/env"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".orcatool.yaml"

// DefaultCompiler is used when neither -c, CC nor the file names one.
const DefaultCompiler = "cc"

// Config holds project defaults. Command-line flags override every field.
type Config struct {
	CC       string `yaml:"cc"`
	BuildDir string `yaml:"build_dir"`
	PortMidi bool   `yaml:"portmidi"`
	Mouse    *bool  `yaml:"mouse"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{BuildDir: env.DefaultRoot}
}

// Load reads the file at path. An empty path means DefaultFile, which may be
// absent; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = env.DefaultRoot
	}
	return cfg, nil
}

// Compiler resolves the compiler executable: the -c value, then the CC
// environment variable, then the file, then DefaultCompiler.
func (c *Config) Compiler(override string) string {
	if override != "" {
		return override
	}
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	if c.CC != "" {
		return c.CC
	}
	return DefaultCompiler
}

// MouseEnabled reports the mouse default; mouse support is on unless the
// file turns it off.
func (c *Config) MouseEnabled() bool {
	return c.Mouse == nil || *c.Mouse
}
