//go:build linux

package sockets

import "portreap/internal/model"

// enumerate lists listening sockets via ss, one invocation per protocol
// since the listener flags differ.
func enumerate() ([]model.Conn, error) {
	out, err := runTool("ss", "-H", "-tlnp")
	if err != nil {
		return nil, err
	}
	conns := parseSS(out, "TCP")

	out, err = runTool("ss", "-H", "-lunp")
	if err != nil {
		return nil, err
	}
	return append(conns, parseSS(out, "UDP")...), nil
}
