package beep

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Beeper emits audible transition signals. Implementations are
// fire-and-forget: platform sound failures must never abort the session.
type Beeper interface {
	Beep(count int, interval time.Duration)
}

// terminalBeeper rings the terminal bell.
type terminalBeeper struct {
	w io.Writer
}

// NewTerminalBeeper returns a Beeper that writes BEL characters to w
// (normally os.Stdout).
func NewTerminalBeeper(w io.Writer) Beeper {
	if w == nil {
		w = os.Stdout
	}
	return &terminalBeeper{w: w}
}

func (b *terminalBeeper) Beep(count int, interval time.Duration) {
	for i := 0; i < count; i++ {
		// Best effort: a write failure is not worth interrupting a session.
		_, _ = fmt.Fprint(b.w, "\a")
		if i < count-1 {
			time.Sleep(interval)
		}
	}
}

// MockBeeper records beep calls for tests.
type MockBeeper struct {
	mu    sync.Mutex
	calls []int
}

func (m *MockBeeper) Beep(count int, interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, count)
}

// Calls returns the beep counts recorded so far.
func (m *MockBeeper) Calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.calls))
	copy(out, m.calls)
	return out
}
