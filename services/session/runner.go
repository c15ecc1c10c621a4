package session

import (
	"context"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/countdown"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// Console is the terminal surface the runner talks to. The status line is
// overwritten in place; everything else is ordinary line output.
type Console interface {
	countdown.StatusWriter

	// SessionStart prints the session header.
	SessionStart(cfg *config.Config)

	// PhaseStart announces a new phase and prepares the status line.
	PhaseStart(phase types.Phase)

	// PhaseEnd finishes the status line once a phase stops rendering.
	PhaseEnd()

	// Prompt prints a keypress-wait message.
	Prompt(msg string)

	// Detached reports that the UI detached while the session keeps running.
	Detached()

	// SessionComplete prints the completion banner, plus the renderer
	// summary when non-empty.
	SessionComplete(summary string)

	// SessionAborted reports user-initiated termination.
	SessionAborted()
}

// Runner sequences the WORK/BREAK phases of one session.
type Runner interface {
	// Run executes the whole session. The returned outcome is
	// OutcomeCompleted when every phase finished (or was ended early) and
	// OutcomeAborted when the user aborted; EndedEarly and Detached never
	// escape the runner.
	Run(ctx context.Context) (types.Outcome, error)
}
