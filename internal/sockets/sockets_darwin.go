//go:build darwin

package sockets

import "portreap/internal/model"

// enumerate lists listening sockets via lsof, restricted to LISTEN state
// for TCP. UDP sockets have no state so they are taken as-is.
func enumerate() ([]model.Conn, error) {
	out, err := runTool("lsof", "-nP", "-iTCP", "-sTCP:LISTEN")
	if err != nil {
		return nil, err
	}
	conns := parseLsof(out, "TCP")

	out, err = runTool("lsof", "-nP", "-iUDP")
	if err != nil {
		return nil, err
	}
	return append(conns, parseLsof(out, "UDP")...), nil
}
