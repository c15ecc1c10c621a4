// Package log provides file-backed loggers. The countdown UI owns stdout,
// so diagnostics go to a log file under the user config directory.
package log

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	InfoLog    *stdlog.Logger
	WarningLog *stdlog.Logger
	ErrorLog   *stdlog.Logger

	logFile *os.File
	once    sync.Once
)

// Initialize sets up the loggers. Pass viewer=true when running as an
// attach viewer so the two processes write to separate files.
func Initialize(viewer bool) {
	once.Do(func() {
		name := "shellpomodoro.log"
		if viewer {
			name = "shellpomodoro.viewer.log"
		}

		var w io.Writer = io.Discard
		if base, err := os.UserConfigDir(); err == nil {
			dir := filepath.Join(base, "shellpomodoro")
			if err := os.MkdirAll(dir, 0755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, name),
					os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					logFile = f
					w = f
				}
			}
		}

		flags := stdlog.Ldate | stdlog.Ltime | stdlog.Lshortfile
		InfoLog = stdlog.New(w, "INFO: ", flags)
		WarningLog = stdlog.New(w, "WARNING: ", flags)
		ErrorLog = stdlog.New(w, "ERROR: ", flags)
	})
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// Every rate-limits log lines inside tight loops.
type Every struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewEvery returns a limiter that allows one log line per interval.
func NewEvery(interval time.Duration) *Every {
	return &Every{interval: interval}
}

// ShouldLog reports whether enough time has passed since the last
// allowed log line.
func (e *Every) ShouldLog() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if now.Sub(e.last) >= e.interval {
		e.last = now
		return true
	}
	return false
}

// Path returns the location of the active log file, for the debug command.
func Path() string {
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}
