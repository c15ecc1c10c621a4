package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inspiringsource/shellpomodoro/log"
	"github.com/inspiringsource/shellpomodoro/services/render"
	"github.com/inspiringsource/shellpomodoro/services/storage"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// viewerTick is the record poll cadence of an attach viewer.
const viewerTick = 200 * time.Millisecond

var (
	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00cc66"})

	phaseStyle = lipgloss.NewStyle().Bold(true)
)

type viewerTickMsg time.Time

func viewerTickCmd() tea.Cmd {
	return tea.Tick(viewerTick, func(t time.Time) tea.Msg {
		return viewerTickMsg(t)
	})
}

// Viewer is the bubbletea model of the attach command. It re-renders an
// in-progress session from the owner-written record; it reads timing, it
// never owns it.
type Viewer struct {
	repo storage.RecordRepository
	keys KeyMap

	renderer  render.Renderer
	record    *storage.SessionRecord
	lastPhase types.Phase
	status    string
	finished  bool
	detached  bool
	aborting  bool
}

// NewViewer creates an attach viewer over the given repository.
func NewViewer(repo storage.RecordRepository) *Viewer {
	return &Viewer{
		repo: repo,
		keys: DefaultKeyMap(),
	}
}

func (v *Viewer) Init() tea.Cmd {
	return viewerTickCmd()
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Detach):
			v.detached = true
			return v, tea.Quit

		case key.Matches(msg, v.keys.EndPhase):
			if err := v.repo.RequestControl(types.ControlEndPhase); err != nil {
				log.WarningLog.Printf("failed to request end-phase: %v", err)
			}
			return v, nil

		case key.Matches(msg, v.keys.Abort):
			if err := v.repo.RequestControl(types.ControlAbort); err != nil {
				log.WarningLog.Printf("failed to request abort: %v", err)
			}
			v.aborting = true
			return v, tea.Quit
		}

	case viewerTickMsg:
		record, err := v.repo.Load()
		if err != nil {
			if errors.Is(err, storage.ErrNoActiveSession) {
				v.finished = true
				return v, tea.Quit
			}
			// Transient read failures: keep the last frame, retry next tick.
			log.WarningLog.Printf("failed to load session record: %v", err)
			return v, viewerTickCmd()
		}
		v.apply(record, time.Time(msg))
		return v, viewerTickCmd()
	}

	return v, nil
}

// apply folds a freshly loaded record into the view state.
func (v *Viewer) apply(record *storage.SessionRecord, now time.Time) {
	if v.renderer == nil {
		r, err := render.New(record.Config.Display, record.Config.DotInterval)
		if err != nil {
			// Unknown mode in a foreign record; fall back to the default.
			r = &render.TimerBack{}
		}
		v.renderer = r
	}

	phase := record.Phase()
	if phase != v.lastPhase {
		if resetter, ok := v.renderer.(render.PhaseResetter); ok {
			resetter.Reset(phase)
		}
		v.lastPhase = phase
	}

	// Elapsed time derives from the owner-written phase start; the viewer
	// keeps no clock of its own.
	elapsed := now.Sub(record.PhaseStartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > phase.Duration {
		elapsed = phase.Duration
	}
	remaining := phase.Duration - elapsed

	v.record = record
	v.status = v.renderer.Render(types.RenderState{
		Elapsed:   elapsed,
		Remaining: remaining,
		Phase:     phase,
		Now:       now,
	})
}

func (v *Viewer) View() string {
	if v.finished {
		return finishedStyle.Render("[✓] Session finished") + "\n"
	}
	if v.detached {
		return "[detached] Viewer exited; session keeps running\n"
	}
	if v.aborting {
		return "Abort requested\n"
	}
	if v.record == nil {
		return "Connecting to session...\n"
	}

	header := phaseStyle.Render(fmt.Sprintf("%s phase", v.record.PhaseKind.Label()))
	return fmt.Sprintf("%s\n%s\n%s\n", header, v.status, Legend())
}

// Finished reports whether the session ended while the viewer was attached.
func (v *Viewer) Finished() bool { return v.finished }
