// Package model holds the data types shared between the socket
// enumerator, the correlator and the presentation layers.
package model

import "fmt"

// Conn is a single row from the OS connection table. It is the raw,
// per-backend parse result; the correlator turns it into PortInfo.
type Conn struct {
	Protocol   string // "TCP" or "UDP"
	LocalAddr  string
	LocalPort  int
	RemoteAddr string
	RemotePort int
	State      string // OS-reported: LISTEN, ESTAB, TIME_WAIT, "*", ...
	PID        int32  // 0 when the OS did not report an owner
}

// PortInfo is the canonical result for one listening port. Values are
// built fresh on every snapshot and never mutated afterwards.
type PortInfo struct {
	Port          uint16  `json:"port"`
	Protocol      string  `json:"protocol"`
	PID           int32   `json:"pid"`
	ProcessName   string  `json:"process_name"`
	ProcessPath   string  `json:"process_path"`
	LocalAddress  string  `json:"local_address"`
	RemoteAddress string  `json:"remote_address"`
	State         string  `json:"state"`
	User          string  `json:"user"`
	MemoryMB      float64 `json:"memory_mb"`
	CPUPercent    float32 `json:"cpu_percent"`
	UptimeSecs    uint64  `json:"uptime_secs"`
	ParentPID     int32   `json:"parent_pid,omitempty"`
	ParentName    string  `json:"parent_name,omitempty"`
}

// UptimeDisplay formats UptimeSecs as a short human-readable duration.
func (p PortInfo) UptimeDisplay() string {
	secs := p.UptimeSecs
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	case secs < 86400:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	default:
		return fmt.Sprintf("%dd %dh", secs/86400, (secs%86400)/3600)
	}
}

// ProcessTreeNode is a display-only projection over the process table.
type ProcessTreeNode struct {
	PID      int32
	Name     string
	IsTarget bool
	Children []ProcessTreeNode
}
