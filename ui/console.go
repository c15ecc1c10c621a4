package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/services/types"
)

// Completion banner, kept from the original tool.
const goodJob = `
 ██████╗  ██████╗  ██████╗ ██████╗      ██╗ ██████╗ ██████╗ ██╗
██╔════╝ ██╔═══██╗██╔═══██╗██╔══██╗     ██║██╔═══██╗██╔══██╗██║
██║  ███╗██║   ██║██║   ██║██║  ██║     ██║██║   ██║██████╔╝██║
██║   ██║██║   ██║██║   ██║██║  ██║██   ██║██║   ██║██╔══██╗╚═╝
╚██████╔╝╚██████╔╝╚██████╔╝██████╔╝╚█████╔╝╚██████╔╝██████╔╝██╗
 ╚═════╝  ╚═════╝  ╚═════╝ ╚═════╝  ╚════╝  ╚═════╝ ╚═════╝ ╚═╝
`

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00cc66"})

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})

	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Legend returns the hotkey help line shown under the status line.
func Legend() string {
	return legendStyle.Render("Hotkeys: Ctrl+C abort • Ctrl+E end phase • Ctrl+O detach")
}

// SessionHeader summarizes the session configuration in one line.
func SessionHeader(cfg *config.Config) string {
	plural := "s"
	if cfg.Iterations == 1 {
		plural = ""
	}
	return headerStyle.Render(fmt.Sprintf(
		"Pomodoro Session: %dmin work, %dmin break, %d iteration%s",
		cfg.WorkMinutes, cfg.BreakMinutes, cfg.Iterations, plural))
}

// Banner returns the session-complete banner.
func Banner() string {
	return bannerStyle.Render(goodJob) + "\nshellpomodoro — great work!\nSession complete"
}

// Console renders the session-owning process's terminal output: a status
// line repainted in place plus ordinary line output around it. It
// implements session.Console.
type Console struct {
	out     io.Writer
	ansi    bool
	display string

	// statusOpen is true while the cursor is parked on the status line.
	statusOpen bool
	phases     int
}

// NewConsole creates a console writing to out (normally os.Stdout). ANSI
// repainting is used only when out is an interactive terminal.
func NewConsole(out io.Writer, display string) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:     out,
		ansi:    supportsANSI(out),
		display: display,
	}
}

// supportsANSI reports whether the writer is a terminal that understands
// escape sequences. SHELLPOMODORO_NO_ANSI forces plain output.
func supportsANSI(out io.Writer) bool {
	if os.Getenv("SHELLPOMODORO_NO_ANSI") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	t := strings.ToLower(os.Getenv("TERM"))
	if t == "dumb" {
		return false
	}
	return true
}

// WriteStatus overwrites the single status line, or appends a line when
// ANSI is unavailable.
func (c *Console) WriteStatus(line string) error {
	var err error
	if c.ansi {
		_, err = fmt.Fprint(c.out, "\x1b[2K\r"+line)
	} else {
		_, err = fmt.Fprintln(c.out, line)
	}
	c.statusOpen = true
	if err != nil {
		return fmt.Errorf("failed to write status line: %w", err)
	}
	return nil
}

// println writes one logical line. While the session holds the terminal in
// raw mode, output post-processing is off and a bare \n does not return the
// carriage, so line endings are emitted as explicit CRLF on terminals.
func (c *Console) println(line string) {
	if c.statusOpen && c.ansi {
		fmt.Fprint(c.out, "\r\n")
		c.statusOpen = false
	}
	if c.ansi {
		fmt.Fprint(c.out, strings.ReplaceAll(line, "\n", "\r\n")+"\r\n")
		return
	}
	fmt.Fprintln(c.out, line)
}

// SessionStart prints the session header and the hotkey legend.
func (c *Console) SessionStart(cfg *config.Config) {
	c.println(SessionHeader(cfg))
	c.println(Legend())
}

// PhaseStart prepares the status line for a new phase. In dots mode,
// phases are separated visually.
func (c *Console) PhaseStart(phase types.Phase) {
	if c.display == config.DisplayDots && c.phases > 0 {
		c.println("│")
	}
	c.phases++
}

// PhaseEnd moves off the status line once the phase stops rendering.
func (c *Console) PhaseEnd() {
	if c.statusOpen && c.ansi {
		fmt.Fprint(c.out, "\r\n")
	}
	c.statusOpen = false
}

// Prompt prints a keypress-wait message.
func (c *Console) Prompt(msg string) {
	c.println(msg)
}

// Detached reports that the UI detached while the session keeps running.
func (c *Console) Detached() {
	c.println("[detached] Session keeps running; run 'shellpomodoro attach' to reconnect.")
}

// SessionComplete prints the completion banner and, when present, the
// renderer summary.
func (c *Console) SessionComplete(summary string) {
	c.println(Banner())
	if summary != "" {
		c.println("")
		c.println(summary)
	}
}

// SessionAborted reports user-initiated termination. No banner.
func (c *Console) SessionAborted() {
	c.println("Session aborted.")
}
