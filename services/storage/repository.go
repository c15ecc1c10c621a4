package storage

import (
	"errors"
	"time"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// ErrNoActiveSession is returned by Load when no session record exists or
// the recorded process is no longer running.
var ErrNoActiveSession = errors.New("no active session")

// SessionRecord is the persisted state of the single running session. The
// session-owning process is the sole writer; attach viewers only read it.
type SessionRecord struct {
	StartedAt time.Time      `json:"started_at"`
	Config    *config.Config `json:"config"`

	// Current phase and its owner-written start time. A viewer derives
	// elapsed time from PhaseStartedAt; it never keeps its own clock.
	PhaseKind      types.PhaseKind `json:"phase_kind"`
	PhaseDuration  time.Duration   `json:"phase_duration"`
	Iteration      int             `json:"iteration"`
	Total          int             `json:"total"`
	PhaseStartedAt time.Time       `json:"phase_started_at"`

	PID       int       `json:"pid"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Phase reconstructs the phase metadata stored in the record.
func (r *SessionRecord) Phase() types.Phase {
	return types.Phase{
		Kind:      r.PhaseKind,
		Duration:  r.PhaseDuration,
		Iteration: r.Iteration,
		Total:     r.Total,
	}
}

// RecordRepository persists the session record and relays control requests
// from attach viewers back to the owning process.
type RecordRepository interface {
	// Save writes the session record atomically: a reader racing a write
	// sees either the previous or the new record, never a partial one.
	Save(record *SessionRecord) error

	// Load reads the current record. Returns ErrNoActiveSession when no
	// record exists or its process is dead.
	Load() (*SessionRecord, error)

	// Clear removes the record. Removing a missing record is not an error.
	Clear() error

	// RequestControl posts a viewer command for the owning process.
	RequestControl(req types.ControlRequest) error

	// TakeControl consumes the pending command, if any. Returns
	// ControlNone when nothing is pending.
	TakeControl() (types.ControlRequest, error)
}
