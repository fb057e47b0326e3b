package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portreap/internal/model"
)

func samplePort() model.PortInfo {
	return model.PortInfo{
		Port:         5432,
		Protocol:     "TCP",
		PID:          8123,
		ProcessName:  "postgres",
		ProcessPath:  "/usr/lib/postgresql/15/bin/postgres",
		LocalAddress: "127.0.0.1:5432",
		State:        "LISTEN",
		User:         "postgres",
		MemoryMB:     142.25,
		CPUPercent:   1.5,
		UptimeSecs:   7384,
		ParentPID:    1,
		ParentName:   "systemd",
	}
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := JSON([]model.PortInfo{samplePort()})
	require.NoError(t, err)

	var back []model.PortInfo
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	require.Len(t, back, 1)
	assert.Equal(t, samplePort(), back[0])
}

func TestJSONOmitsAbsentParentOnly(t *testing.T) {
	p := samplePort()
	p.ParentPID = 0
	p.ParentName = ""
	p.RemoteAddress = ""

	out, err := JSON([]model.PortInfo{p})
	require.NoError(t, err)
	assert.NotContains(t, out, "parent_pid")
	assert.NotContains(t, out, "parent_name")
	// all other optionals stay present even when empty
	assert.Contains(t, out, `"remote_address"`)
	assert.Contains(t, out, `"process_path"`)
}

func TestJSONEmptyListIsArray(t *testing.T) {
	out, err := JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestCSVHasEveryField(t *testing.T) {
	out, err := CSV([]model.PortInfo{samplePort()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])

	cols := strings.Split(lines[1], ",")
	require.Len(t, cols, len(csvHeader))
	assert.Equal(t, "5432", cols[0])
	assert.Equal(t, "postgres", cols[3])
	assert.Equal(t, "142.25", cols[9])
	assert.Equal(t, "1", cols[12])
	assert.Equal(t, "systemd", cols[13])
}

func TestCSVAbsentParentIsEmptyCell(t *testing.T) {
	p := samplePort()
	p.ParentPID = 0
	p.ParentName = ""

	out, err := CSV([]model.PortInfo{p})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	cols := strings.Split(lines[1], ",")
	assert.Equal(t, "", cols[12])
	assert.Equal(t, "", cols[13])
}

func TestMarkdownTable(t *testing.T) {
	out := Markdown([]model.PortInfo{samplePort()})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "| Port |"))
	assert.Contains(t, lines[2], "| 5432 |")
	assert.Contains(t, lines[2], "postgres")
	assert.Contains(t, lines[2], "systemd (1)")
}

func TestUptimeDisplay(t *testing.T) {
	cases := []struct {
		secs uint64
		want string
	}{
		{45, "45s"},
		{125, "2m 5s"},
		{7384, "2h 3m"},
		{180000, "2d 2h"},
	}
	for _, tc := range cases {
		p := model.PortInfo{UptimeSecs: tc.secs}
		assert.Equal(t, tc.want, p.UptimeDisplay())
	}
}
