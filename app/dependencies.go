package app

import (
	"fmt"
	"path/filepath"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/beep"
	"github.com/inspiringsource/shellpomodoro/services/keypoll"
	"github.com/inspiringsource/shellpomodoro/services/storage"
)

// Dependencies holds all service dependencies for the application.
type Dependencies struct {
	Config  *config.Config
	Storage storage.RecordRepository
	Beeper  beep.Beeper
	Poller  keypoll.KeyPoller
}

// InitializeDependencies creates and wires up all service dependencies.
// The poller is created lazily by the session entrypoint because only the
// session-owning process may claim the raw terminal.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	repo, err := storage.NewJSONRepository(filepath.Join(configDir, "state"))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage repository: %w", err)
	}

	return &Dependencies{
		Config:  cfg,
		Storage: repo,
		Beeper:  beep.NewTerminalBeeper(nil),
	}, nil
}

// Cleanup releases held resources, restoring the terminal if a raw-mode
// poller was claimed.
func (d *Dependencies) Cleanup() error {
	if d.Poller != nil {
		return d.Poller.Close()
	}
	return nil
}
