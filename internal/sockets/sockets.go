// Package sockets enumerates listening sockets by invoking the OS's
// connection-listing tool and parsing its tabular output. Exactly one
// backend is compiled per target OS.
package sockets

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"portreap/internal/model"
)

// toolTimeout bounds every external tool invocation so a hung tool
// cannot hang the whole snapshot.
const toolTimeout = 5 * time.Second

// NetError reports that a connection-listing tool could not be invoked
// at all. Individual malformed output rows never produce it.
type NetError struct {
	Tool string
	Err  error
}

func (e *NetError) Error() string {
	return fmt.Sprintf("failed to get network connections: %s: %v", e.Tool, e.Err)
}

func (e *NetError) Unwrap() error { return e.Err }

// Enumerate queries the live connection table and returns a record per
// listening socket, TCP and UDP. Rows without a known owning PID are
// included; the correlator decides what to do with them.
func Enumerate() ([]model.Conn, error) {
	return enumerate()
}

func runTool(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil && len(out) == 0 {
		slog.Debug("socket enumeration tool failed", "tool", name, "err", err)
		return nil, &NetError{Tool: name, Err: err}
	}
	return out, nil
}
