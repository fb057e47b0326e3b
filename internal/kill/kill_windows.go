//go:build windows

package kill

import (
	"fmt"
	"os/exec"
	"strings"
)

// Windows has no graceful-signal equivalent available to unprivileged
// tooling, so termination is always forced regardless of the force
// flag. taskkill failures are classified by their message text.
func kill(pid int32, _ bool) error {
	out, err := exec.Command("taskkill", "/F", "/PID", fmt.Sprint(pid)).CombinedOutput()
	if err == nil {
		return nil
	}

	msg := string(out)
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "access is denied"):
		return &PermissionError{PID: pid, Hint: "Try running as Administrator."}
	case strings.Contains(lower, "not found"):
		return &NotFoundError{PID: pid}
	default:
		return &KillError{PID: pid, Msg: strings.TrimSpace(msg)}
	}
}

func canKill(_ int32) bool {
	// taskkill reports the real answer; assume yes until it says no.
	return true
}
