package keypoll

import (
	"sync"

	"github.com/inspiringsource/shellpomodoro/services/types"
)

// ScriptPoller is a KeyPoller for tests. It replays a queue of hotkeys,
// optionally gated by tick number, and reports as interactive.
type ScriptPoller struct {
	mu sync.Mutex

	// PollFunc overrides Poll entirely when set.
	PollFunc func() (types.Hotkey, bool)

	// At maps the Poll call number (0-based) to the hotkey returned on
	// that call. Calls without an entry report no key.
	At map[int]types.Hotkey

	calls       int
	NonInteract bool
}

// NewScriptPoller creates a poller that presses the given keys on the
// given poll call numbers.
func NewScriptPoller(at map[int]types.Hotkey) *ScriptPoller {
	return &ScriptPoller{At: at}
}

func (p *ScriptPoller) Poll() (types.Hotkey, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.PollFunc != nil {
		return p.PollFunc()
	}

	call := p.calls
	p.calls++
	if key, ok := p.At[call]; ok {
		return key, true
	}
	return types.HotkeyNone, false
}

func (p *ScriptPoller) Interactive() bool { return !p.NonInteract }

func (p *ScriptPoller) Close() error { return nil }

// Calls returns how many times Poll has been invoked.
func (p *ScriptPoller) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
