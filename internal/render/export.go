package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"portreap/internal/model"
)

// JSON serializes the port list. Optional parent fields are omitted
// when absent; everything else is always present.
func JSON(list []model.PortInfo) (string, error) {
	if list == nil {
		list = []model.PortInfo{}
	}
	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export error: %w", err)
	}
	return string(out), nil
}

var csvHeader = []string{
	"port", "protocol", "pid", "process_name", "process_path",
	"local_address", "remote_address", "state", "user",
	"memory_mb", "cpu_percent", "uptime_secs", "parent_pid", "parent_name",
}

// CSV serializes the port list with one header row. Every PortInfo
// field has a column; absent optionals are empty cells.
func CSV(list []model.PortInfo) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export error: %w", err)
	}
	for _, p := range list {
		parentPID := ""
		if p.ParentPID != 0 {
			parentPID = strconv.Itoa(int(p.ParentPID))
		}
		row := []string{
			strconv.Itoa(int(p.Port)),
			p.Protocol,
			strconv.Itoa(int(p.PID)),
			p.ProcessName,
			p.ProcessPath,
			p.LocalAddress,
			p.RemoteAddress,
			p.State,
			p.User,
			strconv.FormatFloat(p.MemoryMB, 'f', 2, 64),
			strconv.FormatFloat(float64(p.CPUPercent), 'f', 1, 32),
			strconv.FormatUint(p.UptimeSecs, 10),
			parentPID,
			p.ParentName,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export error: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export error: %w", err)
	}
	return b.String(), nil
}

// Markdown serializes the port list as a GFM table.
func Markdown(list []model.PortInfo) string {
	var b strings.Builder
	b.WriteString("| Port | Protocol | PID | Process | Path | Address | Remote | State | User | Mem (MB) | CPU % | Uptime | Parent |\n")
	b.WriteString("|------|----------|-----|---------|------|---------|--------|-------|------|----------|-------|--------|--------|\n")
	for _, p := range list {
		parent := ""
		if p.ParentPID != 0 {
			parent = fmt.Sprintf("%s (%d)", p.ParentName, p.ParentPID)
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s | %s | %s | %s | %.2f | %.1f | %s | %s |\n",
			p.Port, p.Protocol, p.PID,
			mdEscape(p.ProcessName), mdEscape(p.ProcessPath),
			p.LocalAddress, p.RemoteAddress, p.State, mdEscape(p.User),
			p.MemoryMB, p.CPUPercent, p.UptimeDisplay(), mdEscape(parent))
	}
	return b.String()
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
