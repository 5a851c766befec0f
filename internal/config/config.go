// ABOUTME: Configuration loading and defaults for dictcrack
// ABOUTME: Handles YAML config files and environment variables

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DICTCRACK_"

// Config holds the complete configuration for dictcrack.
type Config struct {
	// Logging configuration.
	Log LogConfig `yaml:"log"`

	// Tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Attack defaults.
	Attack AttackConfig `yaml:"attack"`

	// Potfile configuration.
	Potfile PotfileConfig `yaml:"potfile"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig holds tracing settings.
type TracingConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Endpoint      string  `yaml:"endpoint"`
	Insecure      bool    `yaml:"insecure"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
}

// AttackConfig holds attack defaults that flags may override.
type AttackConfig struct {
	Algorithm        string        `yaml:"algorithm"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	ProgressFormat   string        `yaml:"progress_format"`
	HostStats        bool          `yaml:"host_stats"`
	RevealCandidates bool          `yaml:"reveal_candidates"`
}

// PotfileConfig holds potfile settings.
type PotfileConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Dir               string  `yaml:"dir"`
	ExpectedItems     uint    `yaml:"expected_items"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`
}

// DefaultConfig returns a Config with default values.
// Logs default to warn so stderr stays readable beside the progress line.
// Tracing is disabled by default; the potfile is enabled.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Tracing: TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			Insecure:      true,
			SamplingRatio: 1.0,
		},
		Attack: AttackConfig{
			Algorithm:        "sha256",
			ProgressInterval: 100 * time.Millisecond,
			ProgressFormat:   "text",
		},
		Potfile: PotfileConfig{
			Enabled:           true,
			Dir:               filepath.Join(DefaultDataDir(), "potfile"),
			ExpectedItems:     100_000,
			FalsePositiveRate: 0.001,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error when path is the default path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from DICTCRACK_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "ALGORITHM"); ok {
		c.Attack.Algorithm = v
	}
	if v, ok := lookup(EnvPrefix + "POTFILE_DIR"); ok {
		c.Potfile.Dir = v
	}
	if v, ok := lookup(EnvPrefix + "POTFILE"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sPOTFILE %q: %w", EnvPrefix, v, err)
		}
		c.Potfile.Enabled = enabled
	}
	if v, ok := lookup(EnvPrefix + "TRACING_ENDPOINT"); ok {
		c.Tracing.Endpoint = v
		c.Tracing.Enabled = v != ""
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.Log.Format)
	}

	switch strings.ToLower(c.Attack.ProgressFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid progress format %q: want text or json", c.Attack.ProgressFormat)
	}

	if c.Attack.ProgressInterval <= 0 {
		return fmt.Errorf("progress interval must be positive, got %s", c.Attack.ProgressInterval)
	}
	if c.Tracing.SamplingRatio < 0 || c.Tracing.SamplingRatio > 1 {
		return fmt.Errorf("sampling ratio must be between 0 and 1, got %v", c.Tracing.SamplingRatio)
	}
	if c.Potfile.FalsePositiveRate <= 0 || c.Potfile.FalsePositiveRate >= 1 {
		return fmt.Errorf("potfile false positive rate must be between 0 and 1, got %v", c.Potfile.FalsePositiveRate)
	}

	return nil
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	// Try XDG_DATA_HOME first.
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "dictcrack")
	}

	// Fall back to home directory.
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dictcrack")
	}

	return filepath.Join(home, ".local", "share", "dictcrack")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	// Try XDG_CONFIG_HOME first.
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dictcrack", "config.yaml")
	}

	// Fall back to home directory.
	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/dictcrack/config.yaml"
	}

	return filepath.Join(home, ".config", "dictcrack", "config.yaml")
}
