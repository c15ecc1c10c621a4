package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

func TestMMSS(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"seconds only", 5 * time.Second, "00:05"},
		{"minute and seconds", 65 * time.Second, "01:05"},
		{"over an hour", 3661 * time.Second, "61:01"},
		{"negative clamps", -3 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MMSS(tt.d); got != tt.want {
				t.Errorf("MMSS(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestPhaseLabel(t *testing.T) {
	p := types.Phase{Kind: types.PhaseWork, Iteration: 2, Total: 4}
	if got := PhaseLabel(p); got != "[2/4] Focus" {
		t.Errorf("PhaseLabel = %q, want %q", got, "[2/4] Focus")
	}
	p.Kind = types.PhaseBreak
	if got := PhaseLabel(p); got != "[2/4] Break" {
		t.Errorf("PhaseLabel = %q, want %q", got, "[2/4] Break")
	}
}

func testState(elapsed, duration time.Duration) types.RenderState {
	remaining := duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return types.RenderState{
		Elapsed:   elapsed,
		Remaining: remaining,
		Phase: types.Phase{
			Kind:      types.PhaseWork,
			Duration:  duration,
			Iteration: 1,
			Total:     1,
		},
		Now: time.Unix(1700000000, 0),
	}
}

func TestRenderersNeverEmpty(t *testing.T) {
	duration := 5 * time.Minute
	states := []types.RenderState{
		testState(0, duration),
		testState(duration/2, duration),
		testState(duration, duration),
	}

	for _, mode := range []string{
		config.DisplayTimerBack,
		config.DisplayTimerForward,
		config.DisplayBar,
		config.DisplayDots,
	} {
		t.Run(mode, func(t *testing.T) {
			r, err := New(mode, 0)
			if err != nil {
				t.Fatalf("New(%q) error: %v", mode, err)
			}
			for _, st := range states {
				if got := r.Render(st); got == "" {
					t.Errorf("%s rendered empty line at elapsed=%v", mode, st.Elapsed)
				}
			}
		})
	}
}

func TestNewUnknownMode(t *testing.T) {
	if _, err := New("spiral", 0); err == nil {
		t.Fatal("expected error for unknown display mode")
	}
}

// parseMMSS extracts the trailing MM:SS of a timer status line.
func parseMMSS(t *testing.T, line string) time.Duration {
	t.Helper()
	fields := strings.Fields(line)
	var min, sec int
	if _, err := fmt.Sscanf(fields[len(fields)-1], "%d:%d", &min, &sec); err != nil {
		t.Fatalf("cannot parse time from %q: %v", line, err)
	}
	return time.Duration(min*60+sec) * time.Second
}

func TestTimerBackAndForwardAreComplementary(t *testing.T) {
	duration := 90 * time.Second
	back := &TimerBack{}
	forward := &TimerForward{}

	for elapsed := time.Duration(0); elapsed <= duration; elapsed += time.Second {
		st := testState(elapsed, duration)
		sum := parseMMSS(t, back.Render(st)) + parseMMSS(t, forward.Render(st))
		if sum != duration {
			t.Fatalf("elapsed=%v: back+forward = %v, want %v", elapsed, sum, duration)
		}
	}
}

func TestBarRender(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantPct string
		wantBar string
	}{
		{"start", 0, "0%", "[--------------------]"},
		{"half", 150 * time.Second, "50%", "[##########----------]"},
		{"done", 300 * time.Second, "100%", "[####################]"},
	}

	bar := &Bar{Width: 20}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bar.Render(testState(tt.elapsed, 300*time.Second))
			if !strings.Contains(got, tt.wantPct) {
				t.Errorf("Render = %q, want percentage %q", got, tt.wantPct)
			}
			if !strings.Contains(got, tt.wantBar) {
				t.Errorf("Render = %q, want bar %q", got, tt.wantBar)
			}
		})
	}
}

func TestDotsInterval(t *testing.T) {
	tests := []struct {
		name     string
		override int
		duration time.Duration
		want     time.Duration
	}{
		{"long phase defaults to a minute", 0, 25 * time.Minute, time.Minute},
		{"ten minutes is long enough", 0, 10 * time.Minute, time.Minute},
		{"short phase yields about ten dots", 0, 100 * time.Second, 10 * time.Second},
		{"tiny phase clamps to a second", 0, 3 * time.Second, time.Second},
		{"explicit interval wins", 7, 25 * time.Minute, 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dots{Interval: time.Duration(tt.override) * time.Second}
			if got := d.DotInterval(tt.duration); got != tt.want {
				t.Errorf("DotInterval(%v) = %v, want %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestDotsMonotonic(t *testing.T) {
	duration := 100 * time.Second
	d := &Dots{}
	d.Reset(testState(0, duration).Phase)

	last := -1
	for elapsed := time.Duration(0); elapsed <= duration; elapsed += 5 * time.Second {
		line := d.Render(testState(elapsed, duration))
		count := strings.Count(line, ".")
		if count < last {
			t.Fatalf("dot count decreased: %d -> %d at elapsed=%v", last, count, elapsed)
		}
		last = count
	}
	if last != 10 {
		t.Errorf("final dot count = %d, want 10", last)
	}
}

func TestDotsSummaryAcrossPhases(t *testing.T) {
	d := &Dots{Interval: time.Second}

	work := types.Phase{Kind: types.PhaseWork, Duration: 3 * time.Second, Iteration: 1, Total: 2}
	d.Reset(work)
	d.Render(types.RenderState{Elapsed: 3 * time.Second, Phase: work})

	brk := types.Phase{Kind: types.PhaseBreak, Duration: 2 * time.Second, Iteration: 1, Total: 2}
	d.Reset(brk)
	d.Render(types.RenderState{Elapsed: 2 * time.Second, Phase: brk})

	want := "...\n│\n.."
	if got := d.Summary(); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}
