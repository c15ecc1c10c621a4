//go:build windows

package storage

import "os"

// pidAlive reports whether a process with the given pid exists. On Windows
// FindProcess opens a handle and fails for dead pids.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	defer proc.Release()
	return true
}
