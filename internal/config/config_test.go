package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Expected version 1, got %d", cfg.Version)
	}
	if cfg.Clone.TimeoutSeconds != 300 {
		t.Errorf("Expected 300s clone timeout, got %d", cfg.Clone.TimeoutSeconds)
	}
	if cfg.Read.MaxFileSizeBytes != 10*1024*1024 {
		t.Errorf("Expected 10MiB read cap, got %d", cfg.Read.MaxFileSizeBytes)
	}
	if cfg.Search.MaxFiles != 15 {
		t.Errorf("Expected 15 max files, got %d", cfg.Search.MaxFiles)
	}
	if cfg.Search.MaxMatchesPerFile != 3 {
		t.Errorf("Expected 3 matches per file, got %d", cfg.Search.MaxMatchesPerFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestHomeEnvOverride(t *testing.T) {
	t.Setenv(HomeEnvVar, "/custom/gitscout/home")

	home, err := Home()
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if home != "/custom/gitscout/home" {
		t.Errorf("Expected env override, got %s", home)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.MaxTokens != 100000 {
		t.Errorf("Expected default maxTokens, got %d", cfg.Search.MaxTokens)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnvVar, dir)

	raw := map[string]interface{}{
		"search": map[string]interface{}{
			"maxFiles": 5,
		},
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.MaxFiles != 5 {
		t.Errorf("Expected maxFiles 5 from file, got %d", cfg.Search.MaxFiles)
	}
	// Untouched keys keep defaults
	if cfg.Search.MaxTokens != 100000 {
		t.Errorf("Expected default maxTokens preserved, got %d", cfg.Search.MaxTokens)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnvVar, dir)

	cfg := DefaultConfig()
	cfg.Clone.TimeoutSeconds = 60
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Clone.TimeoutSeconds != 60 {
		t.Errorf("Expected 60s timeout after round trip, got %d", loaded.Clone.TimeoutSeconds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero clone timeout", func(c *Config) { c.Clone.TimeoutSeconds = 0 }},
		{"zero line end", func(c *Config) { c.Read.DefaultLineEnd = 0 }},
		{"negative read cap", func(c *Config) { c.Read.MaxFileSizeBytes = -1 }},
		{"zero max files", func(c *Config) { c.Search.MaxFiles = 0 }},
		{"zero per-file matches", func(c *Config) { c.Search.MaxMatchesPerFile = 0 }},
		{"zero max tokens", func(c *Config) { c.Search.MaxTokens = 0 }},
		{"negative context", func(c *Config) { c.Search.ContextBefore = -1 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
