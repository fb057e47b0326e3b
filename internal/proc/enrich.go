// Package proc resolves process details for a PID: name, executable
// path, owner, resource usage and the immediate parent.
package proc

import (
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// UnknownName marks a process that vanished between enumeration and
// enrichment. That race is inherent to point-in-time snapshots and is
// not an error.
const UnknownName = "<unknown>"

// Info is the enrichment result for one PID.
type Info struct {
	Name       string
	Path       string
	User       string
	MemoryMB   float64
	CPUPercent float32
	UptimeSecs uint64
	ParentPID  int32
	ParentName string
}

// Enrich never fails: any field the OS refuses to expose is left at its
// zero value, and a vanished process yields the sentinel Info.
func Enrich(pid int32) Info {
	p, err := process.NewProcess(pid)
	if err != nil {
		return Info{Name: UnknownName}
	}

	info := Info{Name: UnknownName}
	if name, err := p.Name(); err == nil && name != "" {
		info.Name = name
	}
	if exe, err := p.Exe(); err == nil {
		info.Path = exe
	}
	if user, err := p.Username(); err == nil {
		info.User = user
	}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		info.MemoryMB = float64(mem.RSS) / 1024.0 / 1024.0
	}
	if cpu, err := p.CPUPercent(); err == nil {
		info.CPUPercent = float32(cpu)
	}
	if created, err := p.CreateTime(); err == nil && created > 0 {
		if up := time.Since(time.UnixMilli(created)); up > 0 {
			info.UptimeSecs = uint64(up.Seconds())
		}
	}
	// One parent hop only; deeper ancestry is the tree walk's job.
	if parent, err := p.Parent(); err == nil && parent != nil {
		info.ParentPID = parent.Pid
		if pname, err := parent.Name(); err == nil {
			info.ParentName = pname
		}
	}
	return info
}
