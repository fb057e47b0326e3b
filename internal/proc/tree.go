package proc

import (
	"github.com/shirou/gopsutil/v3/process"

	"portreap/internal/model"
)

// maxTreeDepth bounds parent-chain walks. A corrupted process table can
// report cyclic parent pointers; the depth cap plus a visited set keeps
// the walk finite.
const maxTreeDepth = 20

// Entry is one (pid, name) pair of a tree walk.
type Entry struct {
	PID  int32
	Name string
}

// parentLookup resolves a pid to its name and parent pid. ok is false
// when the process does not exist.
type parentLookup func(pid int32) (name string, ppid int32, ok bool)

func osLookup(pid int32) (string, int32, bool) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", 0, false
	}
	name, _ := p.Name()
	ppid, err := p.Ppid()
	if err != nil {
		ppid = 0
	}
	return name, ppid, true
}

// Ancestors returns the parent chain starting at pid (target first,
// root last), capped at maxTreeDepth entries.
func Ancestors(pid int32) []Entry {
	return walkAncestors(pid, osLookup)
}

func walkAncestors(pid int32, lookup parentLookup) []Entry {
	var chain []Entry
	seen := make(map[int32]bool)

	cur := pid
	for cur > 0 && len(chain) < maxTreeDepth {
		if seen[cur] {
			break
		}
		seen[cur] = true

		name, ppid, ok := lookup(cur)
		if !ok {
			break
		}
		chain = append(chain, Entry{PID: cur, Name: name})
		cur = ppid
	}
	return chain
}

// Children returns the direct children of pid found by scanning the
// full process table.
func Children(pid int32) []Entry {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	var children []Entry
	for _, p := range procs {
		ppid, err := p.Ppid()
		if err != nil || ppid != pid {
			continue
		}
		name, _ := p.Name()
		children = append(children, Entry{PID: p.Pid, Name: name})
	}
	return children
}

// Tree builds the display projection for pid: the ancestor chain nested
// root-down with the target's direct children attached to it.
func Tree(pid int32) model.ProcessTreeNode {
	chain := Ancestors(pid)
	if len(chain) == 0 {
		return model.ProcessTreeNode{PID: pid, IsTarget: true}
	}

	target := model.ProcessTreeNode{
		PID:      chain[0].PID,
		Name:     chain[0].Name,
		IsTarget: true,
	}
	for _, c := range Children(pid) {
		target.Children = append(target.Children, model.ProcessTreeNode{PID: c.PID, Name: c.Name})
	}

	// Wrap the target in its ancestors, outermost node is the root.
	node := target
	for _, e := range chain[1:] {
		node = model.ProcessTreeNode{
			PID:      e.PID,
			Name:     e.Name,
			Children: []model.ProcessTreeNode{node},
		}
	}
	return node
}
