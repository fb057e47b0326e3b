//go:build !windows

package docker

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containersFixture = `[
  {
    "Id": "abc123def4567890",
    "Names": ["/my-postgres"],
    "Image": "postgres:15",
    "Status": "Up 2 hours",
    "Ports": [{"IP": "0.0.0.0", "PrivatePort": 5432, "PublicPort": 5432, "Type": "tcp"}]
  },
  {
    "Id": "fedcba987654321",
    "Names": ["/web"],
    "Image": "nginx:latest",
    "Status": "Up 5 minutes",
    "Ports": [{"IP": "0.0.0.0", "PrivatePort": 80, "PublicPort": 8080, "Type": "tcp"}]
  }
]`

// fakeDaemon serves a canned Docker Engine API over a Unix socket.
func fakeDaemon(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	sockPath := filepath.Join(t.TempDir(), "docker.sock")
	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(handler)
	srv.Listener.Close()
	srv.Listener = ln
	srv.Start()
	t.Cleanup(srv.Close)

	return NewClient(sockPath)
}

func TestAvailableWithSocket(t *testing.T) {
	c := fakeDaemon(t, http.NotFoundHandler())
	assert.True(t, c.Available())
}

func TestListAll(t *testing.T) {
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/"+apiVersion+"/containers/json", r.URL.Path)
		w.Write([]byte(containersFixture))
	}))

	containers, err := c.ListAll()
	require.NoError(t, err)
	require.Len(t, containers, 2)
	assert.Equal(t, "my-postgres", containers[0].Name)
	assert.Equal(t, "abc123def456", containers[0].ID)
}

func TestForPortFirstMatch(t *testing.T) {
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(containersFixture))
	}))

	info := c.ForPort(8080)
	require.NotNil(t, info)
	assert.Equal(t, "web", info.Name)

	assert.Nil(t, c.ForPort(9999), "no container publishes 9999")
}

func TestForPortDegradesOnMissingRuntime(t *testing.T) {
	c := NewClient("/tmp/nonexistent-docker-test.sock")
	assert.Nil(t, c.ForPort(5432))
}

func TestForPortDegradesOnAPIError(t *testing.T) {
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "daemon on fire", http.StatusInternalServerError)
	}))
	assert.Nil(t, c.ForPort(5432))
}

func TestStopByName(t *testing.T) {
	var gotPath, gotQuery string
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.Stop("my-postgres"))
	assert.Equal(t, "/"+apiVersion+"/containers/my-postgres/stop", gotPath)
	assert.Equal(t, "t=10", gotQuery)
}

func TestStopAlreadyStopped(t *testing.T) {
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	assert.NoError(t, c.Stop("web"))
}

func TestStopUnknownContainer(t *testing.T) {
	c := fakeDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No such container: ghost", http.StatusNotFound)
	}))

	err := c.Stop("ghost")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestStopWithoutRuntime(t *testing.T) {
	c := NewClient("/tmp/nonexistent-docker-test.sock")
	assert.ErrorIs(t, c.Stop("web"), ErrNotAvailable)
}
