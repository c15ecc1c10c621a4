package ui

import (
	"strings"
	"testing"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

func TestSessionHeader(t *testing.T) {
	cfg := &config.Config{WorkMinutes: 25, BreakMinutes: 5, Iterations: 4}
	if got := SessionHeader(cfg); !strings.Contains(got, "25min work, 5min break, 4 iterations") {
		t.Errorf("SessionHeader = %q", got)
	}

	cfg.Iterations = 1
	got := SessionHeader(cfg)
	if !strings.Contains(got, "1 iteration") || strings.Contains(got, "iterations") {
		t.Errorf("singular header = %q", got)
	}
}

func TestWriteStatusPlainFallback(t *testing.T) {
	// A plain buffer is not a terminal, so the console appends lines
	// instead of repainting.
	var buf strings.Builder
	c := NewConsole(writerOnly{&buf}, config.DisplayTimerBack)

	if err := c.WriteStatus("[1/4] Focus 24:59"); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}
	if err := c.WriteStatus("[1/4] Focus 24:58"); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains escape sequences: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2: %q", got, out)
	}
}

func TestDotsPhaseSeparator(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(writerOnly{&buf}, config.DisplayDots)

	work := types.Phase{Kind: types.PhaseWork, Iteration: 1, Total: 2}
	brk := types.Phase{Kind: types.PhaseBreak, Iteration: 1, Total: 2}

	c.PhaseStart(work)
	c.PhaseEnd()
	c.PhaseStart(brk)
	c.PhaseEnd()

	// Only the boundary between phases gets a separator line.
	if got := strings.Count(buf.String(), "│"); got != 1 {
		t.Errorf("separators = %d, want 1: %q", got, buf.String())
	}
}

func TestSessionCompleteIncludesSummary(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(writerOnly{&buf}, config.DisplayDots)

	c.SessionComplete("......")

	out := buf.String()
	if !strings.Contains(out, "Session complete") {
		t.Errorf("banner missing: %q", out)
	}
	if !strings.Contains(out, "......") {
		t.Errorf("summary missing: %q", out)
	}
}

func TestRawModeLineEndings(t *testing.T) {
	// With the terminal in raw mode the kernel no longer turns \n into
	// \r\n, so every line the console prints must carry its own CR.
	var buf strings.Builder
	c := &Console{out: writerOnly{&buf}, ansi: true, display: config.DisplayDots}

	c.SessionStart(&config.Config{WorkMinutes: 25, BreakMinutes: 5, Iterations: 4})
	c.PhaseStart(types.Phase{Kind: types.PhaseWork, Iteration: 1, Total: 2})
	c.WriteStatus("[1/2] Focus 24:59")
	c.PhaseEnd()
	c.Prompt("Work phase complete! Press any key to start break...")
	c.Detached()
	c.SessionComplete("...\n│\n..")

	out := buf.String()
	for i := 0; i < len(out); i++ {
		if out[i] == '\n' && (i == 0 || out[i-1] != '\r') {
			t.Fatalf("bare \\n at byte %d: %q", i, out)
		}
	}
	if !strings.Contains(out, "\r\n") {
		t.Fatalf("no line endings emitted: %q", out)
	}
}

// writerOnly hides any other methods of the underlying writer so the
// console cannot mistake it for a terminal.
type writerOnly struct {
	w interface{ Write([]byte) (int, error) }
}

func (w writerOnly) Write(p []byte) (int, error) { return w.w.Write(p) }
