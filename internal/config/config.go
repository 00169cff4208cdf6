// Package config holds the application configuration: defaults, CLI flag
// overrides and PTI_* environment overrides from the workspace .env.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"pti/internal/targets"
)

// Config holds all configuration for the application
type Config struct {
	// Workspace settings
	WorkspaceRoot string
	DataDir       string

	// Target naming
	TargetName   string
	CiTargetName string
	Atomize      bool

	// Discovery settings
	TestFilePattern string
	PathsToIgnore   []string

	// Execution settings
	Processors int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	WorkspaceRoot string
	TargetName    string
	CiTargetName  string
	NoAtomize     bool
	NoCache       bool
	Processors    int
	Filter        string
	Output        string
	JSON          bool
	Targets       bool
	Verbose       bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		WorkspaceRoot:   DefaultWorkspaceRoot,
		DataDir:         DefaultDataDir,
		TargetName:      DefaultTargetName,
		CiTargetName:    DefaultCiTargetName,
		Atomize:         true,
		TestFilePattern: DefaultTestFilePattern,
		Processors:      DefaultProcessors,
		Flags:           Flags{Processors: DefaultProcessors},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies .env / PTI_* environment overrides from
// the workspace root, then flag overrides on top.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.WorkspaceRoot != "" {
		cfg.WorkspaceRoot = flags.WorkspaceRoot
	}
	cfg.applyEnv()

	if flags.TargetName != "" {
		cfg.TargetName = flags.TargetName
	}
	if flags.CiTargetName != "" {
		cfg.CiTargetName = flags.CiTargetName
	}
	if flags.NoAtomize {
		cfg.Atomize = false
	}
	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}

	return cfg
}

// applyEnv loads the workspace .env (when present) and applies PTI_*
// overrides. Missing .env is fine; the process environment still applies.
func (c *Config) applyEnv() {
	_ = godotenv.Load(filepath.Join(c.WorkspaceRoot, ".env"))

	if v := os.Getenv("PTI_TARGET_NAME"); v != "" {
		c.TargetName = v
	}
	if v := os.Getenv("PTI_CI_TARGET_NAME"); v != "" {
		c.CiTargetName = v
	}
	if v := os.Getenv("PTI_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PTI_PROCESSORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Processors = n
		}
	}
}

// GetWorkspaceRoot returns the workspace root as an absolute path.
func (c *Config) GetWorkspaceRoot() string {
	if abs, err := filepath.Abs(c.WorkspaceRoot); err == nil {
		return abs
	}
	return c.WorkspaceRoot
}

// TargetOptions maps the config onto the plugin options the target builder
// accepts. Disabling atomization maps to an explicit empty CI target name.
func (c *Config) TargetOptions() targets.Options {
	opts := targets.Options{TargetName: c.TargetName}
	ciName := c.CiTargetName
	if !c.Atomize {
		ciName = ""
	}
	opts.CiTargetName = &ciName
	return opts
}
