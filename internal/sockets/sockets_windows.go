//go:build windows

package sockets

import "portreap/internal/model"

// enumerate lists listening sockets via netstat -ano, one invocation per
// protocol. -o appends the owning PID as the last column.
func enumerate() ([]model.Conn, error) {
	out, err := runTool("netstat", "-ano", "-p", "TCP")
	if err != nil {
		return nil, err
	}
	conns := parseNetstat(out, "TCP")

	out, err = runTool("netstat", "-ano", "-p", "UDP")
	if err != nil {
		return nil, err
	}
	return append(conns, parseNetstat(out, "UDP")...), nil
}
