// Package kill terminates a process with platform-appropriate
// semantics: signals on Unix, forced termination on Windows.
package kill

// Kill attempts termination exactly once. There is no retry; the
// caller re-enumerates if it wants to confirm the process is gone.
// On Unix force selects SIGKILL over SIGTERM. Windows termination is
// always forceful at the OS level.
func Kill(pid int32, force bool) error {
	return kill(pid, force)
}

// CanKill reports whether the current user may signal pid without
// actually delivering a signal.
func CanKill(pid int32) bool {
	return canKill(pid)
}
