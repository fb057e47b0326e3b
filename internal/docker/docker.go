// Package docker correlates listening ports with running containers via
// the Docker Engine API. The subsystem is strictly optional: absence of
// the runtime degrades to "no container information", never an error on
// the non-container path.
package docker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	unixSocketPath = "/var/run/docker.sock"
	windowsPipe    = `\\.\pipe\docker_engine`
	apiVersion     = "v1.43"

	// stopTimeoutSecs is how long the daemon waits for a graceful stop
	// before it kills the container.
	stopTimeoutSecs = 10

	requestTimeout = 5 * time.Second
)

// ErrNotAvailable is returned when the runtime's control socket is not
// present on disk.
var ErrNotAvailable = errors.New("docker not available")

// APIError is a failure answer from the Docker daemon.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docker api returned status %d: %s", e.Status, e.Msg)
}

// PortMapping is one published port of a container. HostPort is 0 when
// the port is exposed but not bound on the host side.
type PortMapping struct {
	HostPort      uint16
	ContainerPort uint16
	Protocol      string
}

// ContainerInfo describes a running container. The runtime-assigned ID
// changes when a container is recreated; Name and Image do not, so they
// form the stable identity.
type ContainerInfo struct {
	ID     string // short form, restart-unstable
	Name   string
	Image  string
	Status string
	Ports  []PortMapping
}

// StableKey identifies this container across restarts.
func (c ContainerInfo) StableKey() string {
	return c.Name + ":" + c.Image
}

// Same reports whether other is the same container under the stable
// identity rule, regardless of ID.
func (c ContainerInfo) Same(other ContainerInfo) bool {
	return c.Name == other.Name && c.Image == other.Image
}

// Client talks to the local Docker daemon. Every API call uses a
// short-lived connection; no session is held between calls.
type Client struct {
	socketPath string
}

// NewClient returns a client for the runtime's default control socket,
// or for socketPath when non-empty.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		if runtime.GOOS == "windows" {
			socketPath = windowsPipe
		} else {
			socketPath = unixSocketPath
		}
	}
	return &Client{socketPath: socketPath}
}

// Available reports whether the runtime's control socket exists on
// disk. Cheap and synchronous; no network call.
func (c *Client) Available() bool {
	info, err := os.Stat(c.socketPath)
	if err != nil {
		return false
	}
	// Regular files are accepted so tests can stub the socket path.
	return info.Mode().Type() == os.ModeSocket || info.Mode().IsRegular()
}

// ListAll returns every running container with its port mappings.
func (c *Client) ListAll() ([]ContainerInfo, error) {
	if !c.Available() {
		return nil, ErrNotAvailable
	}

	body, err := c.get("/containers/json")
	if err != nil {
		return nil, err
	}

	var raw []containerJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &APIError{Status: http.StatusOK, Msg: "unparsable container list: " + err.Error()}
	}
	return parseContainers(raw), nil
}

// ForPort returns the container publishing port on the host side, or
// nil. Ports do not collide across running containers, so the first
// match is treated as unique. Any failure, including a panic inside
// the HTTP stack, degrades to nil.
func (c *Client) ForPort(port uint16) (info *ContainerInfo) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("container lookup panicked", "port", port, "panic", r)
			info = nil
		}
	}()

	containers, err := c.ListAll()
	if err != nil {
		if !errors.Is(err, ErrNotAvailable) {
			slog.Debug("container lookup failed", "port", port, "err", err)
		}
		return nil
	}

	for i := range containers {
		for _, m := range containers[i].Ports {
			if m.HostPort != 0 && m.HostPort == port {
				return &containers[i]
			}
		}
	}
	return nil
}

// Stop stops a container. Always addressed by name, never by ID, so the
// call stays correct after a restart changed the ID.
func (c *Client) Stop(name string) error {
	if !c.Available() {
		return ErrNotAvailable
	}

	path := fmt.Sprintf("/containers/%s/stop?t=%d", name, stopTimeoutSecs)
	httpc := c.httpClient()
	defer httpc.CloseIdleConnections()

	resp, err := httpc.Post("http://docker/"+apiVersion+path, "application/json", nil)
	if err != nil {
		return &APIError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
	}
}

// IsCritical reports whether the container runs a service class whose
// loss risks data, judged by image name since containers have no fixed
// port binding guarantee.
func IsCritical(c ContainerInfo) bool {
	criticalImages := []string{
		"postgres", "mysql", "mariadb", "mongo", "redis",
		"elasticsearch", "rabbitmq", "kafka", "zookeeper",
		"consul", "vault", "etcd", "minio",
	}
	image := strings.ToLower(c.Image)
	for _, name := range criticalImages {
		if strings.Contains(image, name) {
			return true
		}
	}
	return false
}

func (c *Client) httpClient() *http.Client {
	return &http.Client{
		Transport: newUnixTransport(c.socketPath),
		Timeout:   requestTimeout,
	}
}

func (c *Client) get(path string) ([]byte, error) {
	httpc := c.httpClient()
	defer httpc.CloseIdleConnections()

	resp, err := httpc.Get("http://docker/" + apiVersion + path)
	if err != nil {
		return nil, &APIError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Msg: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// --- Docker Engine API JSON types (subset) ---

type containerJSON struct {
	ID     string     `json:"Id"`
	Names  []string   `json:"Names"`
	Image  string     `json:"Image"`
	Status string     `json:"Status"`
	Ports  []portJSON `json:"Ports"`
}

type portJSON struct {
	IP          string `json:"IP"`
	PrivatePort uint16 `json:"PrivatePort"`
	PublicPort  uint16 `json:"PublicPort"`
	Type        string `json:"Type"`
}

func parseContainers(raw []containerJSON) []ContainerInfo {
	containers := make([]ContainerInfo, 0, len(raw))
	for _, c := range raw {
		name := "unknown"
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		mappings := make([]PortMapping, 0, len(c.Ports))
		for _, p := range c.Ports {
			proto := p.Type
			if proto == "" {
				proto = "tcp"
			}
			mappings = append(mappings, PortMapping{
				HostPort:      p.PublicPort,
				ContainerPort: p.PrivatePort,
				Protocol:      proto,
			})
		}

		containers = append(containers, ContainerInfo{
			ID:     shortID(c.ID),
			Name:   name,
			Image:  orUnknown(c.Image),
			Status: orUnknown(c.Status),
			Ports:  mappings,
		})
	}
	return containers
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
