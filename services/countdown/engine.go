package countdown

import (
	"context"
	"time"

	"github.com/inspiringsource/shellpomodoro/log"
	"github.com/inspiringsource/shellpomodoro/services/keypoll"
	"github.com/inspiringsource/shellpomodoro/services/render"
	"github.com/inspiringsource/shellpomodoro/services/storage"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// DefaultTick is the render/poll cadence. Short enough that a hotkey feels
// immediate, long enough not to burn CPU on polling.
const DefaultTick = 200 * time.Millisecond

// Clock abstracts wall-clock reads and tick sleeps so the engine is
// testable without real time.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// realClock is the production Clock.
type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }

// StatusWriter overwrites the single countdown status line. Terminal
// details (ANSI vs plain output) live behind this interface.
type StatusWriter interface {
	WriteStatus(line string) error
}

// Engine drives one phase: it computes elapsed/remaining each tick, renders
// the status line, polls for hotkeys and viewer control requests, and
// decides the phase outcome.
type Engine struct {
	clock    Clock
	tick     time.Duration
	poller   keypoll.KeyPoller
	repo     storage.RecordRepository
	everyErr *log.Every
}

// NewEngine creates a countdown engine. repo may be nil when no attach
// viewer can exist (tests); poller must not be nil (use keypoll.Headless).
func NewEngine(clock Clock, tick time.Duration, poller keypoll.KeyPoller, repo storage.RecordRepository) *Engine {
	if clock == nil {
		clock = realClock{}
	}
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Engine{
		clock:    clock,
		tick:     tick,
		poller:   poller,
		repo:     repo,
		everyErr: log.NewEvery(30 * time.Second),
	}
}

// Interactive reports whether the engine's poller can ever produce a key.
func (e *Engine) Interactive() bool {
	return e.poller.Interactive()
}

// Run executes the tick loop for one phase that began at startedAt.
// Passing the original start time lets the runner re-enter a phase after a
// detach without altering its timing. renderer and writer are nil while
// detached: the phase keeps ticking, nothing is drawn.
//
// Outcomes: Completed when the duration elapses, EndedEarly on the
// end-phase hotkey or viewer request, Aborted on the abort hotkey, viewer
// request, or context cancellation, Detached on the detach hotkey.
func (e *Engine) Run(ctx context.Context, phase types.Phase, startedAt time.Time, renderer render.Renderer, writer StatusWriter) (types.Outcome, error) {
	// Zero-duration phases complete without a single tick.
	if phase.Duration <= 0 {
		return types.OutcomeCompleted, nil
	}

	for {
		select {
		case <-ctx.Done():
			return types.OutcomeAborted, nil
		default:
		}

		now := e.clock.Now()
		elapsed := now.Sub(startedAt)
		remaining := phase.Duration - elapsed
		if remaining < 0 {
			remaining = 0
		}

		if renderer != nil && writer != nil {
			st := types.RenderState{
				Elapsed:   elapsed,
				Remaining: remaining,
				Phase:     phase,
				Now:       now,
			}
			if err := writer.WriteStatus(renderer.Render(st)); err != nil {
				// A failed repaint is retried next tick, never fatal.
				if e.everyErr.ShouldLog() {
					log.WarningLog.Printf("status line write failed: %v", err)
				}
			}
		}

		if key, ok := e.poller.Poll(); ok {
			switch key {
			case types.HotkeyAbort:
				return types.OutcomeAborted, nil
			case types.HotkeyEndPhase:
				return types.OutcomeEndedEarly, nil
			case types.HotkeyDetach:
				if renderer != nil {
					return types.OutcomeDetached, nil
				}
			}
		}

		if e.repo != nil {
			req, err := e.repo.TakeControl()
			if err != nil {
				if e.everyErr.ShouldLog() {
					log.WarningLog.Printf("control poll failed: %v", err)
				}
			} else {
				switch req {
				case types.ControlEndPhase:
					return types.OutcomeEndedEarly, nil
				case types.ControlAbort:
					return types.OutcomeAborted, nil
				}
			}
		}

		if remaining == 0 {
			return types.OutcomeCompleted, nil
		}

		e.clock.Sleep(e.tick)
	}
}

// WaitAnyKey blocks until any key is pressed, the context is cancelled, or
// the poller is non-interactive (in which case it returns immediately so
// headless runs never hang). It returns Aborted if the abort hotkey is the
// key that ends the wait, Detached for the detach hotkey, and Completed
// otherwise.
func (e *Engine) WaitAnyKey(ctx context.Context) types.Outcome {
	if !e.poller.Interactive() {
		return types.OutcomeCompleted
	}

	for {
		select {
		case <-ctx.Done():
			return types.OutcomeAborted
		default:
		}

		if key, ok := e.poller.Poll(); ok {
			switch key {
			case types.HotkeyAbort:
				return types.OutcomeAborted
			case types.HotkeyDetach:
				return types.OutcomeDetached
			default:
				return types.OutcomeCompleted
			}
		}

		if e.repo != nil {
			if req, err := e.repo.TakeControl(); err == nil {
				switch req {
				case types.ControlAbort:
					return types.OutcomeAborted
				case types.ControlEndPhase:
					return types.OutcomeCompleted
				}
			}
		}

		e.clock.Sleep(e.tick)
	}
}
