package keypoll

import (
	"os"

	"github.com/inspiringsource/shellpomodoro/services/types"
)

// Control bytes delivered by a raw-mode terminal.
const (
	byteCtrlC = 0x03
	byteCtrlE = 0x05
	byteCtrlO = 0x0f
)

// NonInteractiveEnv disables key input entirely when set to "1", for
// automation and CI runs.
const NonInteractiveEnv = "SHELLPOMODORO_NONINTERACTIVE"

// KeyPoller is a non-blocking check for "is a key available, and which
// one". Poll must return immediately whether or not input is available and
// must never suspend the caller.
type KeyPoller interface {
	// Poll returns the pending hotkey, if any. ok is false when no key is
	// available.
	Poll() (key types.Hotkey, ok bool)

	// Interactive reports whether the poller can ever produce a key. The
	// countdown engine shortens or skips wait states for non-interactive
	// pollers so headless runs never hang.
	Interactive() bool

	// Close restores any terminal state claimed by the poller.
	Close() error
}

// New returns the poller for the current environment: a raw-terminal
// poller when stdin is an interactive terminal, otherwise a headless
// poller that never reports a key. A failure to claim the terminal
// degrades to headless rather than failing the session.
func New() KeyPoller {
	if os.Getenv(NonInteractiveEnv) == "1" {
		return Headless()
	}
	p, err := newTermPoller()
	if err != nil {
		return Headless()
	}
	return p
}

// mapByte translates a raw input byte into a hotkey.
func mapByte(b byte) types.Hotkey {
	switch b {
	case byteCtrlC:
		return types.HotkeyAbort
	case byteCtrlE:
		return types.HotkeyEndPhase
	case byteCtrlO:
		return types.HotkeyDetach
	default:
		return types.HotkeyAny
	}
}

// headlessPoller behaves as if no key is ever pressed.
type headlessPoller struct{}

// Headless returns a poller for environments without usable key input.
func Headless() KeyPoller {
	return headlessPoller{}
}

func (headlessPoller) Poll() (types.Hotkey, bool) { return types.HotkeyNone, false }
func (headlessPoller) Interactive() bool          { return false }
func (headlessPoller) Close() error               { return nil }
