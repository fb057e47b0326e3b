// Package tui is the interactive dashboard: a live table of listening
// ports that re-runs the whole discovery pipeline on a fixed timer and
// drives the kill flow with risk-aware confirmation.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portreap/internal/kill"
	"portreap/internal/model"
	"portreap/internal/ports"
	"portreap/internal/services"
)

const refreshInterval = 2 * time.Second

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

type tickMsg time.Time

type snapshotMsg struct {
	ports []model.PortInfo
	err   error
}

type uiModel struct {
	table      table.Model
	confirm    textinput.Model
	ports      []model.PortInfo
	paused     bool
	confirming bool
	critical   bool
	target     model.PortInfo
	hasTarget  bool
	status     string
	err        error
}

func initialModel() uiModel {
	columns := []table.Column{
		{Title: "Port", Width: 6},
		{Title: "Proto", Width: 5},
		{Title: "PID", Width: 7},
		{Title: "Process", Width: 20},
		{Title: "User", Width: 10},
		{Title: "Mem(MB)", Width: 8},
		{Title: "CPU%", Width: 5},
		{Title: "Uptime", Width: 9},
		{Title: "Service", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "yes"
	ti.CharLimit = 8
	ti.Width = 12

	return uiModel{table: t, confirm: ti}
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(loadSnapshot, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// loadSnapshot runs one full discovery cycle. Every refresh is an
// independent, atomic snapshot; nothing is diffed between runs.
func loadSnapshot() tea.Msg {
	list, err := ports.List()
	return snapshotMsg{ports: list, err: err}
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.paused || m.confirming {
			return m, tick()
		}
		return m, tea.Batch(loadSnapshot, tick())

	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.ports = msg.ports
			m.table.SetRows(toRows(msg.ports))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, loadSnapshot
		case "p":
			m.paused = !m.paused
			if m.paused {
				m.status = "Paused"
			} else {
				m.status = ""
			}
			return m, nil
		case "k":
			return m.startKill()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m uiModel) startKill() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ports) {
		return m, nil
	}
	m.target = m.ports[idx]
	m.hasTarget = true
	m.confirming = true
	m.critical = services.RequiresConfirmation(m.target.Port)
	if m.critical {
		m.confirm.SetValue("")
		return m, m.confirm.Focus()
	}
	return m, nil
}

func (m uiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.critical {
		switch msg.String() {
		case "esc", "ctrl+c":
			m.confirming = false
			m.confirm.Blur()
			m.status = "Cancelled"
			return m, nil
		case "enter":
			m.confirming = false
			m.confirm.Blur()
			if m.confirm.Value() != "yes" {
				m.status = "Cancelled (must type 'yes' exactly)"
				return m, nil
			}
			return m.doKill()
		}
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "y":
		m.confirming = false
		return m.doKill()
	default:
		m.confirming = false
		m.status = "Cancelled"
		return m, nil
	}
}

func (m uiModel) doKill() (tea.Model, tea.Cmd) {
	if !m.hasTarget {
		return m, nil
	}
	if err := kill.Kill(m.target.PID, false); err != nil {
		m.status = errStyle.Render(err.Error())
	} else {
		m.status = statusStyle.Render(fmt.Sprintf("Killed %s (PID %d)", m.target.ProcessName, m.target.PID))
	}
	m.hasTarget = false
	return m, loadSnapshot
}

func toRows(list []model.PortInfo) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, p := range list {
		service := services.ShortName(p.Port)
		if services.RequiresConfirmation(p.Port) {
			service = "! " + service
		}
		rows = append(rows, table.Row{
			fmt.Sprint(p.Port),
			p.Protocol,
			fmt.Sprint(p.PID),
			p.ProcessName,
			p.User,
			fmt.Sprintf("%.1f", p.MemoryMB),
			fmt.Sprintf("%.1f", p.CPUPercent),
			p.UptimeDisplay(),
			service,
		})
	}
	return rows
}

func (m uiModel) View() string {
	var footer string
	switch {
	case m.confirming && m.critical:
		footer = warnStyle.Render(fmt.Sprintf("CRITICAL: kill %s (PID %d)? ", m.target.ProcessName, m.target.PID)) +
			"type 'yes' + enter  " + m.confirm.View()
	case m.confirming:
		footer = fmt.Sprintf("Kill %s (PID %d)? [y/N]", m.target.ProcessName, m.target.PID)
	case m.err != nil:
		footer = errStyle.Render(m.err.Error())
	case m.status != "":
		footer = m.status
	default:
		footer = "q quit · r refresh · p pause · k kill"
	}
	return baseStyle.Render(m.table.View()) + "\n" + footer + "\n"
}

// Run starts the dashboard and blocks until the user quits.
func Run() int {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("tui error:", err)
		return 1
	}
	return 0
}
