// Package cli wires the engine to the command line: listing, single
// port inspection, the kill flow with its confirmation policy, the
// container view and the interactive dashboard.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"portreap/internal/config"
	"portreap/internal/docker"
	"portreap/internal/logging"
	"portreap/internal/model"
	"portreap/internal/ports"
	"portreap/internal/proc"
	"portreap/internal/render"
	"portreap/internal/tui"
)

const usage = `portreap - see what's using any port and kill it

Usage:
  portreap [flags]               list all listening ports
  portreap [flags] <port|alias>  inspect one port
  portreap [flags] -kill <port>  kill the owning process (or stop the container)
  portreap containers            list running containers
  portreap tui                   interactive dashboard

Flags:
  -kill        kill the process on the port
  -force       skip confirmation
  -9           use SIGKILL instead of SIGTERM
  -dry-run     show what would be killed without doing it
  -tree        show the process tree when inspecting
  -json        JSON output
  -csv         CSV output
  -markdown    Markdown output
  -color mode  auto|always|never
  -verbose     debug logging
`

type app struct {
	cfg config.Config
	opt render.Options

	jsonOut  bool
	csvOut   bool
	mdOut    bool
	killFlag bool
	force    bool
	sigkill  bool
	dryRun   bool
	tree     bool
}

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	fs := flag.NewFlagSet("portreap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var a app
	var colorMode string
	var verbose bool
	fs.BoolVar(&a.jsonOut, "json", false, "output JSON")
	fs.BoolVar(&a.csvOut, "csv", false, "output CSV")
	fs.BoolVar(&a.mdOut, "markdown", false, "output Markdown")
	fs.BoolVar(&a.killFlag, "kill", false, "kill the process on the port")
	fs.BoolVar(&a.force, "force", false, "skip confirmation")
	fs.BoolVar(&a.sigkill, "9", false, "use SIGKILL")
	fs.BoolVar(&a.dryRun, "dry-run", false, "show what would be killed")
	fs.BoolVar(&a.tree, "tree", false, "show the process tree")
	fs.StringVar(&colorMode, "color", "", "color mode: auto|always|never")
	fs.BoolVar(&verbose, "verbose", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logging.Setup(verbose)
	a.cfg = config.Load()
	if colorMode == "" {
		colorMode = a.cfg.Defaults.Color
	}
	a.opt = render.Options{Color: resolveColor(colorMode)}

	rest := fs.Args()
	if len(rest) == 0 {
		if a.killFlag {
			fmt.Fprintln(os.Stderr, "portreap: -kill needs a port")
			return 2
		}
		return a.runList()
	}

	switch rest[0] {
	case "containers":
		return a.runContainers()
	case "tui":
		return tui.Run()
	}

	port, err := a.resolvePort(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 2
	}

	if a.killFlag {
		return a.runKill(port)
	}
	return a.runInspect(port)
}

// resolvePort turns a numeric argument or a configured alias into a
// port number.
func (a *app) resolvePort(arg string) (uint16, error) {
	if port, ok := a.cfg.ResolveAlias(arg); ok {
		return port, nil
	}
	n, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid port: %s", arg)
	}
	return uint16(n), nil
}

func (a *app) runList() int {
	list, err := ports.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}

	switch {
	case a.jsonOut:
		out, err := render.JSON(list)
		if err != nil {
			fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
			return 1
		}
		fmt.Println(out)
	case a.csvOut:
		out, err := render.CSV(list)
		if err != nil {
			fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
			return 1
		}
		fmt.Print(out)
	case a.mdOut:
		fmt.Print(render.Markdown(list))
	default:
		fmt.Print(render.Table(list, a.opt))
	}
	return 0
}

func (a *app) runInspect(port uint16) int {
	info, err := ports.InfoFor(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}
	if info == nil {
		fmt.Printf("Port %d is not in use\n", port)
		return 0
	}

	switch {
	case a.jsonOut:
		out, err := render.JSON([]model.PortInfo{*info})
		if err != nil {
			fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
			return 1
		}
		fmt.Println(out)
	default:
		fmt.Print(render.Details(*info, a.opt))
		if container := docker.NewClient("").ForPort(port); container != nil {
			fmt.Printf("\n  Docker container: %s (%s, %s)\n", container.Name, container.ID, container.Image)
		}
		if a.tree {
			fmt.Println()
			fmt.Print(render.Tree(proc.Tree(info.PID), a.opt))
		}
	}
	return 0
}

func (a *app) runContainers() int {
	client := docker.NewClient("")
	if !client.Available() {
		fmt.Fprintln(os.Stderr, "portreap: docker not available")
		return 1
	}
	list, err := client.ListAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "portreap: %v\n", err)
		return 1
	}
	fmt.Print(render.Containers(list, a.opt))
	return 0
}

func resolveColor(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
