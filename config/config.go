package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "config.yaml"

// Display modes for the countdown status line.
const (
	DisplayTimerBack    = "timer-back"
	DisplayTimerForward = "timer-forward"
	DisplayBar          = "bar"
	DisplayDots         = "dots"
)

// Config holds the parameters of a Pomodoro session. It is immutable once a
// session starts; Validate rejects bad values before any phase runs.
type Config struct {
	WorkMinutes  int    `yaml:"work_minutes"`
	BreakMinutes int    `yaml:"break_minutes"`
	Iterations   int    `yaml:"iterations"`
	Beeps        int    `yaml:"beeps"`
	Display      string `yaml:"display"`
	// DotInterval is the dot emission interval in seconds for the dots
	// display. Zero means "pick a sensible default per phase".
	DotInterval int `yaml:"dot_interval,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		WorkMinutes:  25,
		BreakMinutes: 5,
		Iterations:   4,
		Beeps:        2,
		Display:      DisplayTimerBack,
	}
}

// Validate checks the configuration before a session starts.
func (c *Config) Validate() error {
	if c.WorkMinutes <= 0 {
		return fmt.Errorf("work minutes must be positive, got %d", c.WorkMinutes)
	}
	if c.BreakMinutes <= 0 {
		return fmt.Errorf("break minutes must be positive, got %d", c.BreakMinutes)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Beeps < 0 {
		return fmt.Errorf("beeps must be non-negative, got %d", c.Beeps)
	}
	switch c.Display {
	case DisplayTimerBack, DisplayTimerForward, DisplayBar, DisplayDots:
	default:
		return fmt.Errorf("unknown display mode: %q", c.Display)
	}
	if c.DotInterval < 0 {
		return fmt.Errorf("dot interval must be non-negative, got %d", c.DotInterval)
	}
	return nil
}

// WorkDuration returns the work phase length.
func (c *Config) WorkDuration() time.Duration {
	return time.Duration(c.WorkMinutes) * time.Minute
}

// BreakDuration returns the break phase length.
func (c *Config) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

// GetConfigDir returns the config directory for shellpomodoro:
// ~/.config/shellpomodoro on Linux, the platform equivalent elsewhere.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, "shellpomodoro"), nil
}

// LoadConfig loads the configuration file, returning defaults when the file
// does not exist or cannot be parsed.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	configDir, err := GetConfigDir()
	if err != nil {
		return cfg
	}

	data, err := os.ReadFile(filepath.Join(configDir, ConfigFileName))
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes the configuration file, creating the config directory
// if needed.
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
