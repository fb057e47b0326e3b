package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"portreap/internal/docker"
	"portreap/internal/kill"
	"portreap/internal/model"
	"portreap/internal/ports"
	"portreap/internal/render"
	"portreap/internal/services"
)

// runKill discovers the owner of port and terminates it. When a
// container publishes the port the flow stops the container by name
// instead of signalling a PID.
func (a *app) runKill(port uint16) int {
	if container := docker.NewClient("").ForPort(port); container != nil {
		return a.stopContainer(port, container)
	}

	info, err := ports.InfoFor(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}
	if info == nil {
		fmt.Printf("Port %d is not in use\n", port)
		return 0
	}

	critical := services.RequiresConfirmation(port)
	forceful := a.sigkill || strings.EqualFold(a.cfg.Defaults.Signal, "SIGKILL")

	if a.dryRun {
		hint := ""
		if critical {
			if s := services.Lookup(port); s != nil {
				hint = fmt.Sprintf("  [%s - %s]", s.Name, s.Risk)
			}
		}
		if !kill.CanKill(info.PID) {
			hint += "  (may need elevated privileges)"
		}
		fmt.Printf("Would kill: PID %d (%s) on port %d%s\n", info.PID, info.ProcessName, port, hint)
		return 0
	}

	// force flag or confirm=false in config skips the prompt
	if !a.force && a.cfg.Defaults.Confirm {
		fmt.Print(render.Details(*info, a.opt))
		fmt.Println()
		if !a.confirmKill(info, critical) {
			fmt.Println("Cancelled.")
			return 0
		}
	}

	if err := kill.Kill(info.PID, forceful); err != nil {
		var nf *kill.NotFoundError
		if errors.As(err, &nf) {
			// gone already; the goal state is reached
			fmt.Printf("Process %d already exited\n", info.PID)
			return 0
		}
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}

	fmt.Printf("✓ Killed process %d (%s) on port %d\n", info.PID, info.ProcessName, port)
	return 0
}

func (a *app) stopContainer(port uint16, container *docker.ContainerInfo) int {
	critical := docker.IsCritical(*container)

	if a.dryRun {
		hint := ""
		if critical {
			hint = "  [CRITICAL DATABASE CONTAINER]"
		}
		fmt.Printf("Would stop container: %s (%s) on port %d%s\n", container.Name, container.ID, port, hint)
		return 0
	}

	fmt.Printf("Docker container on port %d:\n", port)
	fmt.Printf("  Name:   %s\n", container.Name)
	fmt.Printf("  ID:     %s\n", container.ID)
	fmt.Printf("  Image:  %s\n", container.Image)
	fmt.Printf("  Status: %s\n", container.Status)
	if critical {
		fmt.Println("\n  ⚠ This is a CRITICAL DATABASE container! Stopping may cause DATA LOSS")
	}
	fmt.Println()

	if !a.force && a.cfg.Defaults.Confirm {
		// Stopping a database container risks data loss beyond one
		// process, so critical containers need the typed phrase, not a
		// one-key yes.
		if critical {
			if !a.confirmExact("yes", fmt.Sprintf("Type 'yes' to stop container %s: ", container.Name)) {
				fmt.Println("Cancelled. (Must type 'yes' exactly)")
				return 0
			}
		} else if !a.confirmYesNo("Stop this container? [y/N]: ") {
			fmt.Println("Cancelled.")
			return 0
		}
	}

	// stop by name, never by id: the id changes when the container is
	// recreated, the name does not
	if err := docker.NewClient("").Stop(container.Name); err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}

	fmt.Printf("✓ Stopped container %s on port %d\n", container.Name, port)
	return 0
}

func (a *app) confirmKill(info *model.PortInfo, critical bool) bool {
	if critical {
		prompt := fmt.Sprintf("Kill CRITICAL process %d (%s)? Type 'yes' to confirm: ", info.PID, info.ProcessName)
		return a.confirmExact("yes", prompt)
	}
	return a.confirmYesNo(fmt.Sprintf("Kill process %d (%s)? [y/N]: ", info.PID, info.ProcessName))
}

func (a *app) confirmYesNo(prompt string) bool {
	fmt.Print(prompt)
	line, err := readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) confirmExact(phrase, prompt string) bool {
	fmt.Print(prompt)
	line, err := readLine()
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == phrase
}

func readLine() (string, error) {
	return bufio.NewReader(os.Stdin).ReadString('\n')
}
