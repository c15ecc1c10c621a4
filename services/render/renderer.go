package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// Renderer converts a per-tick snapshot into one status line of text.
// Implementations must be deterministic in the state argument and must
// never return an empty line.
type Renderer interface {
	Render(st types.RenderState) string
}

// PhaseResetter is implemented by renderers that keep per-phase output,
// such as the dots renderer. The session runner calls Reset at each
// phase boundary.
type PhaseResetter interface {
	Reset(phase types.Phase)
}

// Summarizer is implemented by renderers that accumulate a session
// summary to print under the completion banner.
type Summarizer interface {
	Summary() string
}

// New returns the renderer for the given display mode. The mode is chosen
// once at session start; there is no mid-session switching.
func New(display string, dotInterval int) (Renderer, error) {
	switch display {
	case config.DisplayTimerBack:
		return &TimerBack{}, nil
	case config.DisplayTimerForward:
		return &TimerForward{}, nil
	case config.DisplayBar:
		return &Bar{Width: DefaultBarWidth}, nil
	case config.DisplayDots:
		return &Dots{Interval: time.Duration(dotInterval) * time.Second}, nil
	default:
		return nil, fmt.Errorf("unknown display mode: %q", display)
	}
}

// MMSS formats a duration as zero-padded MM:SS. Negative durations clamp
// to 00:00; minutes may exceed 59 (e.g. "61:01").
func MMSS(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// PhaseLabel formats the iteration counter and phase name shared by every
// display mode, e.g. "[2/4] Focus".
func PhaseLabel(p types.Phase) string {
	return fmt.Sprintf("[%d/%d] %s", p.Iteration, p.Total, p.Kind.Label())
}

// TimerBack renders the remaining time, counting down to 00:00.
type TimerBack struct{}

func (r *TimerBack) Render(st types.RenderState) string {
	return fmt.Sprintf("%s %s", PhaseLabel(st.Phase), MMSS(st.Remaining))
}

// TimerForward renders the elapsed time, counting up from 00:00.
type TimerForward struct{}

func (r *TimerForward) Render(st types.RenderState) string {
	elapsed := st.Elapsed
	if elapsed > st.Phase.Duration {
		elapsed = st.Phase.Duration
	}
	return fmt.Sprintf("%s %s", PhaseLabel(st.Phase), MMSS(elapsed))
}

// DefaultBarWidth is the cell count of the progress bar.
const DefaultBarWidth = 20

// Bar renders a fixed-width progress bar with a floor percentage and the
// remaining time.
type Bar struct {
	Width int
}

func (r *Bar) Render(st types.RenderState) string {
	width := r.Width
	if width <= 0 {
		width = DefaultBarWidth
	}

	progress := 1.0
	if st.Phase.Duration > 0 {
		progress = float64(st.Elapsed) / float64(st.Phase.Duration)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(width))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	pct := int(progress * 100)

	return fmt.Sprintf("%s [%s] %d%% %s", PhaseLabel(st.Phase), bar, pct, MMSS(st.Remaining))
}

// Dots emits one dot marker per elapsed interval and keeps an append-only
// per-phase dot line. The dot count never decreases within a phase.
type Dots struct {
	// Interval between dots. Zero selects a default per phase: one dot per
	// minute for phases of ten minutes or more, otherwise an interval that
	// yields roughly ten dots over the phase.
	Interval time.Duration

	phase   types.Phase
	current string
	history []string
}

// DotInterval returns the effective interval for the given phase duration.
func (r *Dots) DotInterval(duration time.Duration) time.Duration {
	if r.Interval > 0 {
		return r.Interval
	}
	if duration >= 10*time.Minute {
		return time.Minute
	}
	interval := duration / 10
	if interval < time.Second {
		interval = time.Second
	}
	// Round up to whole seconds so dots land on tick boundaries.
	if rem := interval % time.Second; rem != 0 {
		interval += time.Second - rem
	}
	return interval
}

// Reset starts a fresh dot line for a new phase, folding the previous
// phase's dots into the session summary with a separator.
func (r *Dots) Reset(phase types.Phase) {
	if r.current != "" {
		r.history = append(r.history, r.current)
	}
	r.phase = phase
	r.current = ""
}

func (r *Dots) Render(st types.RenderState) string {
	interval := r.DotInterval(st.Phase.Duration)
	want := int(st.Elapsed / interval)
	if limit := int(st.Phase.Duration / interval); want > limit {
		want = limit
	}
	// Append-only: never drop dots already emitted this phase.
	if want > len(r.current) {
		r.current = strings.Repeat(".", want)
	}

	line := r.current
	if line == "" {
		line = "·"
	}
	return fmt.Sprintf("%s %s", PhaseLabel(st.Phase), line)
}

// Summary returns the dot lines of all phases rendered so far, separated
// per phase, for the session completion footer.
func (r *Dots) Summary() string {
	lines := r.history
	if r.current != "" {
		lines = append(lines, r.current)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n│\n")
}
