package domain

import "fmt"

// ExitStatus is how a process terminated.
type ExitStatus struct {
	Signal string // Name of the terminating signal, empty if the process exited
	Code   int    // Exit code; -1 when killed by a signal or unknown
}

// Success reports whether the process exited cleanly with code 0.
func (s ExitStatus) Success() bool {
	return s.Signal == "" && s.Code == 0
}

// String returns a short human-readable form, e.g. "exit code 1" or "signal killed".
func (s ExitStatus) String() string {
	if s.Signal != "" {
		return "signal " + s.Signal
	}
	return fmt.Sprintf("exit code %d", s.Code)
}
