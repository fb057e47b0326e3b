package docker

import (
	"context"
	"net"
	"net/http"
)

// newUnixTransport dials the Docker daemon over its Unix domain socket.
// The host part of request URLs is ignored.
func newUnixTransport(socketPath string) *http.Transport {
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
}
