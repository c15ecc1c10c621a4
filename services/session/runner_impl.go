package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/log"
	"github.com/inspiringsource/shellpomodoro/services/beep"
	"github.com/inspiringsource/shellpomodoro/services/countdown"
	"github.com/inspiringsource/shellpomodoro/services/render"
	"github.com/inspiringsource/shellpomodoro/services/storage"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// beepInterval is the spacing between consecutive beeps.
const beepInterval = 200 * time.Millisecond

// runnerImpl is the concrete implementation of Runner.
type runnerImpl struct {
	cfg      *config.Config
	engine   *countdown.Engine
	renderer render.Renderer
	beeper   beep.Beeper
	repo     storage.RecordRepository
	console  Console
	clock    countdown.Clock

	// attached tracks whether this process still renders the UI. A detach
	// hotkey flips it off for the rest of the session; the phases keep
	// running and any number of attach invocations may render them.
	attached bool

	startedAt time.Time
}

// NewRunner creates a session runner. The config must already be validated.
func NewRunner(
	cfg *config.Config,
	engine *countdown.Engine,
	renderer render.Renderer,
	beeper beep.Beeper,
	repo storage.RecordRepository,
	console Console,
	clock countdown.Clock,
) Runner {
	if clock == nil {
		clock = countdown.NewClock()
	}
	return &runnerImpl{
		cfg:      cfg,
		engine:   engine,
		renderer: renderer,
		beeper:   beeper,
		repo:     repo,
		console:  console,
		clock:    clock,
		attached: true,
	}
}

func (r *runnerImpl) Run(ctx context.Context) (types.Outcome, error) {
	r.startedAt = r.clock.Now()
	r.console.SessionStart(r.cfg)

	defer func() {
		if err := r.repo.Clear(); err != nil {
			log.WarningLog.Printf("failed to clear session record: %v", err)
		}
	}()

	total := r.cfg.Iterations
	for iteration := 1; iteration <= total; iteration++ {
		workPhase := types.Phase{
			Kind:      types.PhaseWork,
			Duration:  r.cfg.WorkDuration(),
			Iteration: iteration,
			Total:     total,
		}

		outcome, err := r.runPhase(ctx, workPhase)
		if err != nil {
			return types.OutcomeAborted, err
		}
		if outcome == types.OutcomeAborted {
			r.console.SessionAborted()
			return types.OutcomeAborted, nil
		}

		r.beepTransition()

		if iteration == total {
			// No trailing break after the final work phase.
			r.console.SessionComplete(r.summary())
			return types.OutcomeCompleted, nil
		}

		if abort := r.waitForKey(ctx, outcome,
			"Work phase complete! Press any key to start break..."); abort {
			r.console.SessionAborted()
			return types.OutcomeAborted, nil
		}

		breakPhase := types.Phase{
			Kind:      types.PhaseBreak,
			Duration:  r.cfg.BreakDuration(),
			Iteration: iteration,
			Total:     total,
		}

		outcome, err = r.runPhase(ctx, breakPhase)
		if err != nil {
			return types.OutcomeAborted, err
		}
		if outcome == types.OutcomeAborted {
			r.console.SessionAborted()
			return types.OutcomeAborted, nil
		}

		// Ending a break early still beeps; all non-aborted outcomes are
		// treated uniformly at transitions.
		r.beepTransition()

		if abort := r.waitForKey(ctx, outcome,
			"Break complete! Press any key to start next work phase..."); abort {
			r.console.SessionAborted()
			return types.OutcomeAborted, nil
		}
	}

	r.console.SessionComplete(r.summary())
	return types.OutcomeCompleted, nil
}

// runPhase drives one phase to a terminal outcome, surviving detach: after
// the detach hotkey the same phase is re-entered without a renderer, with
// its original start time, so detaching never alters timing.
func (r *runnerImpl) runPhase(ctx context.Context, phase types.Phase) (types.Outcome, error) {
	startedAt := r.clock.Now()

	if err := r.saveRecord(phase, startedAt); err != nil {
		// The session can run without a record; only attach is degraded.
		log.WarningLog.Printf("failed to save session record: %v", err)
	}

	if resetter, ok := r.renderer.(render.PhaseResetter); ok {
		resetter.Reset(phase)
	}
	if r.attached {
		r.console.PhaseStart(phase)
	}

	for {
		var (
			renderer render.Renderer
			writer   countdown.StatusWriter
		)
		if r.attached {
			renderer = r.renderer
			writer = r.console
		}

		outcome, err := r.engine.Run(ctx, phase, startedAt, renderer, writer)
		if err != nil {
			return outcome, fmt.Errorf("phase %s failed: %w", phase.Kind.Label(), err)
		}

		if outcome == types.OutcomeDetached {
			r.attached = false
			r.console.Detached()
			// Refresh the record so a new viewer sees current ownership.
			if err := r.saveRecord(phase, startedAt); err != nil {
				log.WarningLog.Printf("failed to refresh session record: %v", err)
			}
			continue
		}

		if r.attached {
			r.console.PhaseEnd()
		}
		return outcome, nil
	}
}

// waitForKey pauses between phases until a key is pressed. The wait is
// skipped when the previous phase was ended early, when no UI is attached,
// and when input is non-interactive, so automated runs never hang.
// It returns true when the wait ended in an abort.
func (r *runnerImpl) waitForKey(ctx context.Context, prev types.Outcome, msg string) bool {
	if prev == types.OutcomeEndedEarly || !r.attached {
		return false
	}
	if !r.engine.Interactive() {
		r.console.Prompt(msg + " [auto-continue: non-interactive]")
		return false
	}

	r.console.Prompt(msg)
	switch r.engine.WaitAnyKey(ctx) {
	case types.OutcomeAborted:
		return true
	case types.OutcomeDetached:
		r.attached = false
		r.console.Detached()
	}
	return false
}

// beepTransition emits the transition beeps. Headless runs stay silent.
func (r *runnerImpl) beepTransition() {
	if r.cfg.Beeps <= 0 || !r.engine.Interactive() {
		return
	}
	r.beeper.Beep(r.cfg.Beeps, beepInterval)
}

func (r *runnerImpl) summary() string {
	if s, ok := r.renderer.(render.Summarizer); ok {
		return s.Summary()
	}
	return ""
}

func (r *runnerImpl) saveRecord(phase types.Phase, startedAt time.Time) error {
	return r.repo.Save(&storage.SessionRecord{
		StartedAt:      r.startedAt,
		Config:         r.cfg,
		PhaseKind:      phase.Kind,
		PhaseDuration:  phase.Duration,
		Iteration:      phase.Iteration,
		Total:          phase.Total,
		PhaseStartedAt: startedAt,
		PID:            os.Getpid(),
	})
}
