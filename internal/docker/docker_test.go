package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableNoSocket(t *testing.T) {
	c := NewClient("/tmp/nonexistent-docker-test.sock")
	assert.False(t, c.Available())
}

func TestStableIdentity(t *testing.T) {
	// container restart: new ID, same name and image
	before := ContainerInfo{ID: "abc123def456", Name: "my-postgres", Image: "postgres:15", Status: "Up 2 hours"}
	after := ContainerInfo{ID: "xyz789abc012", Name: "my-postgres", Image: "postgres:15", Status: "Up 1 minute"}

	assert.True(t, before.Same(after))
	assert.Equal(t, before.StableKey(), after.StableKey())
	assert.Equal(t, "my-postgres:postgres:15", before.StableKey())
}

func TestStableIdentityDifferentContainer(t *testing.T) {
	pg := ContainerInfo{ID: "abc", Name: "my-postgres", Image: "postgres:15"}

	renamed := pg
	renamed.Name = "other-postgres"
	assert.False(t, pg.Same(renamed))

	reimaged := pg
	reimaged.Image = "postgres:16"
	assert.False(t, pg.Same(reimaged))

	sameButNewID := pg
	sameButNewID.ID = "def"
	assert.True(t, pg.Same(sameButNewID))
}

func TestIsCritical(t *testing.T) {
	critical := []string{"postgres:15-alpine", "mysql:8.0", "redis:7-alpine", "bitnami/kafka:3.6", "mongo:7"}
	for _, image := range critical {
		assert.True(t, IsCritical(ContainerInfo{Image: image}), image)
	}

	benign := []string{"node:20-alpine", "nginx:latest", "alpine:3.19"}
	for _, image := range benign {
		assert.False(t, IsCritical(ContainerInfo{Image: image}), image)
	}
}

func TestParseContainers(t *testing.T) {
	raw := []containerJSON{{
		ID:     "0123456789abcdef0123",
		Names:  []string{"/web-app"},
		Image:  "nginx:latest",
		Status: "Up 3 hours",
		Ports: []portJSON{
			{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"},
			{PrivatePort: 9000, Type: ""},
		},
	}}

	containers := parseContainers(raw)
	require.Len(t, containers, 1)

	c := containers[0]
	assert.Equal(t, "0123456789ab", c.ID, "short 12-char id")
	assert.Equal(t, "web-app", c.Name, "leading slash stripped")
	assert.Equal(t, "nginx:latest", c.Image)
	require.Len(t, c.Ports, 2)
	assert.EqualValues(t, 8080, c.Ports[0].HostPort)
	assert.EqualValues(t, 80, c.Ports[0].ContainerPort)
	assert.EqualValues(t, 0, c.Ports[1].HostPort, "exposed but unbound")
	assert.Equal(t, "tcp", c.Ports[1].Protocol, "missing type defaults to tcp")
}

func TestParseContainersMissingFields(t *testing.T) {
	containers := parseContainers([]containerJSON{{ID: "ab"}})
	require.Len(t, containers, 1)
	assert.Equal(t, "ab", containers[0].ID)
	assert.Equal(t, "unknown", containers[0].Name)
	assert.Equal(t, "unknown", containers[0].Image)
	assert.Equal(t, "unknown", containers[0].Status)
}
