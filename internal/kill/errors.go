package kill

import "fmt"

// KillError is a termination failure that is neither a permission
// problem nor a vanished target.
type KillError struct {
	PID int32
	Msg string
}

func (e *KillError) Error() string {
	return fmt.Sprintf("failed to kill process %d: %s", e.PID, e.Msg)
}

// PermissionError means the OS privilege model blocked the signal. The
// message carries the escalation hint so callers can print it directly.
type PermissionError struct {
	PID  int32
	Hint string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: cannot kill process %d. %s", e.PID, e.Hint)
}

// NotFoundError means the target vanished between discovery and the
// kill attempt. Callers treat it as a benign race.
type NotFoundError struct {
	PID int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("process not found: PID %d", e.PID)
}
