package keypoll

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/inspiringsource/shellpomodoro/services/types"
)

// termPoller reads single keystrokes from a raw-mode terminal. A reader
// goroutine feeds a buffered channel; Poll does a non-blocking receive so
// the tick loop is never suspended.
type termPoller struct {
	fd       int
	oldState *term.State
	keys     chan byte
	done     chan struct{}
}

func newTermPoller() (KeyPoller, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	p := &termPoller{
		fd:       fd,
		oldState: oldState,
		keys:     make(chan byte, 16),
		done:     make(chan struct{}),
	}

	go p.readLoop()
	return p, nil
}

func (p *termPoller) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case p.keys <- buf[0]:
		case <-p.done:
			return
		default:
			// Channel full: drop the key rather than block the reader.
		}
	}
}

func (p *termPoller) Poll() (types.Hotkey, bool) {
	select {
	case b := <-p.keys:
		return mapByte(b), true
	default:
		return types.HotkeyNone, false
	}
}

func (p *termPoller) Interactive() bool { return true }

// Close restores the terminal to its original mode.
func (p *termPoller) Close() error {
	close(p.done)
	if p.oldState == nil {
		return nil
	}
	if err := term.Restore(p.fd, p.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	p.oldState = nil
	return nil
}
