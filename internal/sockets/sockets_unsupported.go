//go:build !linux && !darwin && !windows

package sockets

import (
	"errors"

	"portreap/internal/model"
)

func enumerate() ([]model.Conn, error) {
	return nil, &NetError{Tool: "none", Err: errors.New("unsupported platform")}
}
