// Package render formats engine results for the terminal: a pretty
// table, a detail card, a process tree, and lossless JSON/CSV/Markdown
// exports.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portreap/internal/docker"
	"portreap/internal/model"
	"portreap/internal/services"
)

type Options struct {
	Color bool
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func (o Options) styled(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

func riskDot(risk services.RiskLevel, opt Options) string {
	switch risk {
	case services.Low:
		return opt.styled(successStyle, "●")
	case services.Medium:
		return opt.styled(warnStyle, "●")
	case services.High:
		return opt.styled(dangerStyle, "●")
	default:
		return opt.styled(dangerStyle, "⚠")
	}
}

// Table renders the port list, one row per port.
func Table(list []model.PortInfo, opt Options) string {
	if len(list) == 0 {
		return "No listening ports found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", opt.styled(headerStyle,
		fmt.Sprintf("%-7s %-6s %-8s %-20s %-12s %9s %6s %10s  %s",
			"PORT", "PROTO", "PID", "PROCESS", "USER", "MEM(MB)", "CPU%", "UPTIME", "SERVICE")))

	for _, p := range list {
		service := ""
		if s := services.Lookup(p.Port); s != nil {
			service = fmt.Sprintf("%s %s", riskDot(s.Risk, opt), s.Name)
		}
		fmt.Fprintf(&b, "%-7d %-6s %-8d %-20s %-12s %9.1f %6.1f %10s  %s\n",
			p.Port, p.Protocol, p.PID,
			truncate(p.ProcessName, 20), truncate(p.User, 12),
			p.MemoryMB, p.CPUPercent, p.UptimeDisplay(), service)
	}
	return b.String()
}

// Details renders the inspect view for a single port, including the
// service warning when the port maps to a known service.
func Details(p model.PortInfo, opt Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", opt.styled(headerStyle, fmt.Sprintf(" Port %d/%s ", p.Port, p.Protocol)))
	fmt.Fprintf(&b, "  Process:  %s (PID %d)\n", p.ProcessName, p.PID)
	if p.ProcessPath != "" {
		fmt.Fprintf(&b, "  Path:     %s\n", p.ProcessPath)
	}
	if p.User != "" {
		fmt.Fprintf(&b, "  User:     %s\n", p.User)
	}
	fmt.Fprintf(&b, "  Address:  %s\n", p.LocalAddress)
	if p.RemoteAddress != "" {
		fmt.Fprintf(&b, "  Remote:   %s\n", p.RemoteAddress)
	}
	fmt.Fprintf(&b, "  State:    %s\n", p.State)
	fmt.Fprintf(&b, "  Memory:   %.1f MB   CPU: %.1f%%   Uptime: %s\n", p.MemoryMB, p.CPUPercent, p.UptimeDisplay())
	if p.ParentPID != 0 {
		fmt.Fprintf(&b, "  Parent:   %s (PID %d)\n", p.ParentName, p.ParentPID)
	}

	if s := services.Lookup(p.Port); s != nil {
		fmt.Fprintf(&b, "\n  %s Known service: %s - %s (%s)\n",
			riskDot(s.Risk, opt), s.Name, s.Description, s.Risk)
		if s.Risk == services.High || s.Risk == services.Critical {
			fmt.Fprintf(&b, "  %s\n", opt.styled(dangerStyle, "⚠ Killing this service may cause system instability!"))
		}
	}
	return b.String()
}

// Tree renders the ancestry chain root-down with the target's children
// attached underneath.
func Tree(node model.ProcessTreeNode, opt Options) string {
	var b strings.Builder
	b.WriteString(opt.styled(headerStyle, " Process Tree ") + "\n")
	writeTree(&b, node, 0, opt)
	return b.String()
}

func writeTree(b *strings.Builder, node model.ProcessTreeNode, depth int, opt Options) {
	indent := strings.Repeat("  ", depth)
	connector := "├─"
	if depth == 0 {
		connector = "●"
	}

	label := fmt.Sprintf("%s (PID %d)", node.Name, node.PID)
	if node.IsTarget {
		fmt.Fprintf(b, "%s%s %s ← Target\n", indent, connector, opt.styled(successStyle, label))
	} else {
		fmt.Fprintf(b, "%s%s %s\n", indent, connector, opt.styled(dimStyle, label))
	}
	for _, child := range node.Children {
		writeTree(b, child, depth+1, opt)
	}
}

// Containers renders the container list.
func Containers(list []docker.ContainerInfo, opt Options) string {
	if len(list) == 0 {
		return "No running containers.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", opt.styled(headerStyle,
		fmt.Sprintf("%-14s %-24s %-28s %-18s %s", "ID", "NAME", "IMAGE", "STATUS", "PORTS")))
	for _, c := range list {
		marker := ""
		if docker.IsCritical(c) {
			marker = " " + opt.styled(dangerStyle, "⚠")
		}
		fmt.Fprintf(&b, "%-14s %-24s %-28s %-18s %s%s\n",
			c.ID, truncate(c.Name, 24), truncate(c.Image, 28), truncate(c.Status, 18),
			formatMappings(c.Ports), marker)
	}
	return b.String()
}

func formatMappings(ports []docker.PortMapping) string {
	var parts []string
	for _, m := range ports {
		if m.HostPort == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d/%s", m.HostPort, m.ContainerPort, m.Protocol))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
