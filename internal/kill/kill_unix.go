//go:build !windows

package kill

import (
	"errors"

	"golang.org/x/sys/unix"
)

func kill(pid int32, force bool) error {
	sig := unix.SIGTERM
	if force {
		sig = unix.SIGKILL
	}

	err := unix.Kill(int(pid), sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EPERM):
		return &PermissionError{PID: pid, Hint: "Try running with sudo."}
	case errors.Is(err, unix.ESRCH):
		return &NotFoundError{PID: pid}
	default:
		return &KillError{PID: pid, Msg: err.Error()}
	}
}

// canKill probes with the null signal, which checks permission without
// delivering anything.
func canKill(pid int32) bool {
	return unix.Kill(int(pid), 0) == nil
}
