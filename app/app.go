package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inspiringsource/shellpomodoro/log"
	"github.com/inspiringsource/shellpomodoro/services/countdown"
	"github.com/inspiringsource/shellpomodoro/services/keypoll"
	"github.com/inspiringsource/shellpomodoro/services/render"
	"github.com/inspiringsource/shellpomodoro/services/session"
	"github.com/inspiringsource/shellpomodoro/services/storage"
	"github.com/inspiringsource/shellpomodoro/services/types"
	"github.com/inspiringsource/shellpomodoro/ui"
)

// ErrAborted is returned by Run when the user aborted the session. The CLI
// maps it to exit code 1 with no completion banner.
var ErrAborted = errors.New("session aborted")

// ErrNoActiveSession is re-exported for the CLI's distinct exit code.
var ErrNoActiveSession = storage.ErrNoActiveSession

// Run executes one full Pomodoro session in this process. It owns phase
// timing for the whole session, including any time spent detached.
func Run(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}

	if existing, err := deps.Storage.Load(); err == nil && existing.PID != os.Getpid() {
		return fmt.Errorf("another session is already running (pid %d); use 'shellpomodoro attach'", existing.PID)
	}

	renderer, err := render.New(cfg.Display, cfg.DotInterval)
	if err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}

	// SIGINT/SIGTERM outside raw mode become a context-level abort; inside
	// raw mode Ctrl+C arrives as a key and is handled by the tick loop.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.InfoLog.Printf("received signal %s", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	deps.Poller = keypoll.New()
	console := ui.NewConsole(os.Stdout, cfg.Display)
	engine := countdown.NewEngine(nil, countdown.DefaultTick, deps.Poller, deps.Storage)
	runner := session.NewRunner(cfg, engine, renderer, deps.Beeper, deps.Storage, console, nil)

	outcome, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	if outcome == types.OutcomeAborted {
		return ErrAborted
	}
	return nil
}

// Attach connects a viewer to an in-progress session and renders it until
// the session ends or the viewer detaches. Returns ErrNoActiveSession when
// there is nothing to attach to.
func Attach(ctx context.Context, deps *Dependencies) error {
	if _, err := deps.Storage.Load(); err != nil {
		if errors.Is(err, storage.ErrNoActiveSession) {
			return ErrNoActiveSession
		}
		return fmt.Errorf("failed to read session record: %w", err)
	}

	p := tea.NewProgram(ui.NewViewer(deps.Storage), tea.WithContext(ctx))
	model, err := p.Run()
	if err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	if viewer, ok := model.(*ui.Viewer); ok && viewer.Finished() {
		fmt.Println("[✓] Session finished")
	}
	return nil
}
