package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lifecycle"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	leakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	traceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateName
)

type watchModel struct {
	managers []*lifecycle.Manager
	leaks    []lifecycle.Leak
	input    textinput.Model
	selected int
	state    modelState
}

type tickMsg time.Time

func newWatchModel(managers []*lifecycle.Manager) *watchModel {
	ti := textinput.New()
	ti.Placeholder = "manager name"
	ti.CharLimit = 32
	return &watchModel{managers: managers, input: ti}
}

func runTUI(managers []*lifecycle.Manager) error {
	p := tea.NewProgram(newWatchModel(managers))
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *watchModel) Init() tea.Cmd {
	m.refresh()
	return tick()
}

func (m *watchModel) refresh() {
	m.leaks = lifecycle.Leaks()
	if m.selected >= len(m.leaks) {
		m.selected = len(m.leaks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.state == stateName {
			return m.updateName(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *watchModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.leaks)-1 {
			m.selected++
		}
	case "c":
		if m.selected < len(m.leaks) {
			m.cleanSelected()
		}
	case "n":
		m.state = stateName
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "r":
		m.refresh()
	}
	return m, nil
}

func (m *watchModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = fmt.Sprintf("demo-%d", len(m.managers))
		}
		m.managers = append(m.managers, newDemoManager(name))
		m.state = stateList
		m.refresh()
		return m, nil
	case "esc":
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *watchModel) cleanSelected() {
	id := m.leaks[m.selected].ID
	for _, mgr := range m.managers {
		if mgr.ID() == id {
			mgr.Clean()
		}
	}
	m.refresh()
}

func (m *watchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("lifecycle leakwatch"))
	b.WriteString("\n\n")

	if len(m.leaks) == 0 {
		b.WriteString("no outstanding managers\n")
	}
	for i, l := range m.leaks {
		line := fmt.Sprintf("%-16s age=%-10s %s", l.Name, l.Age.Round(time.Second), l.ID[:8])
		if i == m.selected && m.state == stateList {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(leakStyle.Render(line))
		}
		b.WriteByte('\n')
		if i == m.selected {
			b.WriteString(traceStyle.Render("  " + firstFrame(l.Trace)))
			b.WriteByte('\n')
		}
	}

	if m.state == stateName {
		b.WriteString("\nname: " + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: create  esc: cancel"))
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("n: new manager  c: clean selected  r: refresh  q: quit"))
	}
	b.WriteByte('\n')
	return b.String()
}

func firstFrame(trace string) string {
	if i := strings.Index(trace, " <- "); i >= 0 {
		return trace[:i]
	}
	return trace
}
