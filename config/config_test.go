package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WorkMinutes != 25 || cfg.BreakMinutes != 5 || cfg.Iterations != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Beeps != 2 {
		t.Errorf("default beeps = %d, want 2", cfg.Beeps)
	}
	if cfg.Display != DisplayTimerBack {
		t.Errorf("default display = %q, want %q", cfg.Display, DisplayTimerBack)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero work", func(c *Config) { c.WorkMinutes = 0 }, true},
		{"negative break", func(c *Config) { c.BreakMinutes = -1 }, true},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, true},
		{"negative beeps", func(c *Config) { c.Beeps = -1 }, true},
		{"zero beeps ok", func(c *Config) { c.Beeps = 0 }, false},
		{"unknown display", func(c *Config) { c.Display = "spiral" }, true},
		{"dots display ok", func(c *Config) { c.Display = DisplayDots }, false},
		{"negative dot interval", func(c *Config) { c.DotInterval = -1 }, true},
		{"dot interval ok", func(c *Config) { c.DotInterval = 30 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDotIntervalMessage(t *testing.T) {
	// Zero means "pick a default per phase", so only negatives are
	// rejected and the message must say so.
	cfg := DefaultConfig()
	cfg.DotInterval = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("negative dot interval should not validate")
	}
	if !strings.Contains(err.Error(), "non-negative") {
		t.Errorf("error = %q, want mention of non-negative", err)
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{WorkMinutes: 25, BreakMinutes: 5}
	if got := cfg.WorkDuration(); got != 25*time.Minute {
		t.Errorf("WorkDuration = %v, want 25m", got)
	}
	if got := cfg.BreakDuration(); got != 5*time.Minute {
		t.Errorf("BreakDuration = %v, want 5m", got)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.WorkMinutes = 50
	cfg.Display = DisplayDots
	cfg.DotInterval = 30

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded := LoadConfig()
	if loaded.WorkMinutes != 50 {
		t.Errorf("WorkMinutes = %d, want 50", loaded.WorkMinutes)
	}
	if loaded.Display != DisplayDots {
		t.Errorf("Display = %q, want dots", loaded.Display)
	}
	if loaded.DotInterval != 30 {
		t.Errorf("DotInterval = %d, want 30", loaded.DotInterval)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg.WorkMinutes != 25 || cfg.Display != DisplayTimerBack {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "shellpomodoro")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, ConfigFileName),
		[]byte("{not yaml"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := LoadConfig()
	if cfg.WorkMinutes != 25 {
		t.Errorf("corrupt file should yield defaults, got %+v", cfg)
	}
}
