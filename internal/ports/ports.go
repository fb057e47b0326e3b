// Package ports is the engine facade: it merges enumerated sockets with
// process details into PortInfo snapshots.
package ports

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"portreap/internal/model"
	"portreap/internal/proc"
	"portreap/internal/sockets"
)

// enrichLimit bounds the enrichment fan-out. Each PID's enrichment is
// independent, so they run concurrently; the final sort fixes ordering.
const enrichLimit = 8

// List returns one PortInfo per listening port, sorted ascending by
// port number. Sockets whose owning PID is unknown are dropped: a port
// cannot be actioned without an owner.
func List() ([]model.PortInfo, error) {
	conns, err := sockets.Enumerate()
	if err != nil {
		return nil, err
	}
	return correlate(conns, proc.Enrich), nil
}

// InfoFor returns the PortInfo for a single port from a fresh snapshot,
// or nil when nothing listens there.
func InfoFor(port uint16) (*model.PortInfo, error) {
	list, err := List()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Port == port {
			return &list[i], nil
		}
	}
	return nil, nil
}

func correlate(conns []model.Conn, enrich func(int32) proc.Info) []model.PortInfo {
	var owned []model.Conn
	for _, c := range conns {
		if c.PID > 0 && c.LocalPort > 0 && c.LocalPort <= 65535 {
			owned = append(owned, c)
		}
	}

	results := make([]model.PortInfo, len(owned))
	var g errgroup.Group
	g.SetLimit(enrichLimit)
	for i, c := range owned {
		g.Go(func() error {
			results[i] = buildPortInfo(c, enrich(c.PID))
			return nil
		})
	}
	_ = g.Wait() // enrichment never returns an error

	sort.SliceStable(results, func(i, j int) bool { return results[i].Port < results[j].Port })

	// One entry per port: first occurrence in sorted order wins, so a
	// UDP bind is hidden by a TCP bind on the same number.
	seen := make(map[uint16]bool, len(results))
	deduped := results[:0]
	for _, p := range results {
		if seen[p.Port] {
			continue
		}
		seen[p.Port] = true
		deduped = append(deduped, p)
	}
	return deduped
}

func buildPortInfo(c model.Conn, info proc.Info) model.PortInfo {
	p := model.PortInfo{
		Port:         uint16(c.LocalPort),
		Protocol:     c.Protocol,
		PID:          c.PID,
		ProcessName:  info.Name,
		ProcessPath:  info.Path,
		LocalAddress: fmt.Sprintf("%s:%d", c.LocalAddr, c.LocalPort),
		State:        c.State,
		User:         info.User,
		MemoryMB:     info.MemoryMB,
		CPUPercent:   info.CPUPercent,
		UptimeSecs:   info.UptimeSecs,
		ParentPID:    info.ParentPID,
		ParentName:   info.ParentName,
	}
	if c.RemoteAddr != "" {
		p.RemoteAddress = fmt.Sprintf("%s:%d", c.RemoteAddr, c.RemotePort)
	}
	return p
}
