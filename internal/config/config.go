// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the optional .commitfmt.yaml file from the
// repository root.
//
// An absent file yields defaults that reproduce the classic hook behavior:
// normalize line endings, run black over the tree, block the commit if the
// working tree changed.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file, looked up at the
// repository root.
const FileName = ".commitfmt.yaml"

// Engine names for the repository backend.
const (
	EngineGit   = "git"   // shell out to the git binary
	EngineGoGit = "gogit" // in-process, via go-git
)

// Check is an extra command to run before the cleanliness gate.
type Check struct {
	// Run is the command and its arguments.
	Run []string `yaml:"run"`
	// SkipInCI skips the check when the CI environment variable is "true".
	SkipInCI bool `yaml:"skip_in_ci"`
	// OnlyInCI runs the check only when the CI environment variable is "true".
	OnlyInCI bool `yaml:"only_in_ci"`
}

// Config describes a repository's hook setup.
type Config struct {
	// Formatter is the code formatter command, run at the repository root.
	Formatter []string `yaml:"formatter"`
	// Exclude lists path globs (relative to the root) that line-ending
	// normalization leaves alone. The version control metadata directory
	// is always excluded.
	Exclude []string `yaml:"exclude"`
	// Checks are extra commands to run after formatting.
	Checks []Check `yaml:"checks"`
	// Engine selects the repository backend, EngineGit by default.
	Engine string `yaml:"engine"`
	// Workers bounds normalization parallelism. Zero means one worker
	// per CPU.
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Formatter: []string{"black", "."},
		Engine:    EngineGit,
	}
}

// Load reads the configuration file from root, falling back to [Default]
// if it does not exist.
func Load(root string) (*Config, error) {
	b, err := os.ReadFile(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Formatter) == 0 {
		return errors.New("formatter must not be empty")
	}
	for i, check := range c.Checks {
		if len(check.Run) == 0 {
			return fmt.Errorf("checks[%d]: run must not be empty", i)
		}
	}
	switch c.Engine {
	case EngineGit, EngineGoGit:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}
