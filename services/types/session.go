package types

import "time"

// PhaseKind identifies a timed interval within a session.
type PhaseKind int

const (
	PhaseWork PhaseKind = iota
	PhaseBreak
)

// Label returns the user-facing name of the phase kind.
func (k PhaseKind) Label() string {
	if k == PhaseBreak {
		return "Break"
	}
	return "Focus"
}

// Phase describes one timed WORK or BREAK interval. It is created by the
// session runner at phase start and is read-only for the rest of the phase.
type Phase struct {
	Kind      PhaseKind
	Duration  time.Duration
	Iteration int
	Total     int
}

// Outcome is the terminal result of running one phase.
type Outcome int

const (
	// OutcomeCompleted means the phase ran its full duration.
	OutcomeCompleted Outcome = iota
	// OutcomeEndedEarly means the user cut the phase short; the session
	// continues as if the phase completed.
	OutcomeEndedEarly
	// OutcomeAborted terminates the whole session immediately.
	OutcomeAborted
	// OutcomeDetached means the UI was detached mid-phase. The phase itself
	// keeps running; the caller re-enters it without a renderer.
	OutcomeDetached
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeEndedEarly:
		return "ended-early"
	case OutcomeAborted:
		return "aborted"
	case OutcomeDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// RenderState is the per-tick snapshot handed to a renderer. It is
// recomputed every tick and never persisted.
type RenderState struct {
	Elapsed   time.Duration
	Remaining time.Duration
	Phase     Phase
	Now       time.Time
}

// Hotkey is a recognized non-blocking key input with a session-control effect.
type Hotkey int

const (
	HotkeyNone Hotkey = iota
	HotkeyAbort
	HotkeyEndPhase
	HotkeyDetach
	HotkeyAny
)

// ControlRequest is a command written by an attached viewer process and
// consumed by the session-owning process on its next tick.
type ControlRequest int

const (
	ControlNone ControlRequest = iota
	ControlEndPhase
	ControlAbort
)
