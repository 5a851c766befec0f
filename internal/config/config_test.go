// ABOUTME: Tests for configuration defaults, YAML loading and env overrides
// ABOUTME: Uses temporary files and injected lookups

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Attack.Algorithm != "sha256" {
		t.Errorf("Attack.Algorithm = %q, want sha256", cfg.Attack.Algorithm)
	}
	if cfg.Attack.ProgressInterval != 100*time.Millisecond {
		t.Errorf("Attack.ProgressInterval = %v, want 100ms", cfg.Attack.ProgressInterval)
	}
	if !cfg.Potfile.Enabled {
		t.Error("Potfile should be enabled by default")
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing should be disabled by default")
	}
	if !strings.Contains(cfg.Potfile.Dir, "dictcrack") {
		t.Errorf("Potfile.Dir = %q, want under a dictcrack directory", cfg.Potfile.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log:
  level: debug
  format: json
attack:
  algorithm: md5
  progress_interval: 250ms
potfile:
  enabled: false
  dir: /tmp/pot
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Attack.Algorithm != "md5" {
		t.Errorf("Attack.Algorithm = %q, want md5", cfg.Attack.Algorithm)
	}
	if cfg.Attack.ProgressInterval != 250*time.Millisecond {
		t.Errorf("Attack.ProgressInterval = %v, want 250ms", cfg.Attack.ProgressInterval)
	}
	if cfg.Potfile.Enabled || cfg.Potfile.Dir != "/tmp/pot" {
		t.Errorf("Potfile = %+v, want disabled at /tmp/pot", cfg.Potfile)
	}
	// Unset keys keep their defaults.
	if cfg.Attack.ProgressFormat != "text" {
		t.Errorf("Attack.ProgressFormat = %q, want text", cfg.Attack.ProgressFormat)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("log: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	badValue := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(badValue, []byte("log:\n  format: xml\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing explicit file", path: filepath.Join(dir, "missing.yaml")},
		{name: "malformed yaml", path: badYAML},
		{name: "invalid log format", path: badValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := config.Load(tt.path); err == nil {
				t.Errorf("Load(%s) expected error, got nil", tt.path)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"DICTCRACK_LOG_LEVEL":        "warn",
		"DICTCRACK_ALGORITHM":        "sha1",
		"DICTCRACK_POTFILE":          "false",
		"DICTCRACK_POTFILE_DIR":      "/data/pot",
		"DICTCRACK_TRACING_ENDPOINT": "collector:4317",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Attack.Algorithm != "sha1" {
		t.Errorf("Attack.Algorithm = %q, want sha1", cfg.Attack.Algorithm)
	}
	if cfg.Potfile.Enabled || cfg.Potfile.Dir != "/data/pot" {
		t.Errorf("Potfile = %+v, want disabled at /data/pot", cfg.Potfile)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Endpoint != "collector:4317" {
		t.Errorf("Tracing = %+v, want enabled at collector:4317", cfg.Tracing)
	}
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "DICTCRACK_POTFILE" {
			return "maybe", true
		}
		return "", false
	})
	if err == nil {
		t.Error("ApplyEnv() with invalid bool expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "progress format", mutate: func(c *config.Config) { c.Attack.ProgressFormat = "xml" }},
		{name: "progress interval", mutate: func(c *config.Config) { c.Attack.ProgressInterval = 0 }},
		{name: "sampling ratio", mutate: func(c *config.Config) { c.Tracing.SamplingRatio = 2 }},
		{name: "false positive rate", mutate: func(c *config.Config) { c.Potfile.FalsePositiveRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}
