// Package tui is a terminal browser for a loaded design: a layer list that
// drives hover and selection on a viewer, beside a panel of derived styles.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the bubbletea model of the browser.
type Model struct {
	viewer *viewer.Viewer
	list   list.Model
	styles styles

	width, height int
	status        string
}

type styles struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	property lipgloss.Style
	status   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#961fe0")).Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		property: lipgloss.NewStyle().Foreground(lipgloss.Color("#1c6ced")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f0134e")),
	}
}

// New builds a browser over a loaded viewer.
func New(v *viewer.Viewer) Model {
	l := list.New(items(v.Root(), v.Nodes()), list.NewDefaultDelegate(), defaultWidth/2, defaultHeight-2)
	l.Title = "Layers"
	l.SetShowHelp(false)
	if root := v.Root(); root != nil {
		l.Title = root.Name
	}

	m := Model{
		viewer: v,
		list:   l,
		styles: defaultStyles(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.hoverCurrent()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/2, max(msg.Height-2, 1))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if n := m.current(); n != nil {
				m.report(m.viewer.Select(n.ID))
			}
			return m, nil
		case "esc":
			if m.viewer.Selected() != nil {
				m.viewer.Deselect()
				return m, nil
			}
		}
	}

	before := m.current()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if after := m.current(); after != before {
		m.hoverCurrent()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	panelWidth := max(m.width-m.width/2-4, 10)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.list.View(),
		m.styles.panel.Width(panelWidth).Render(m.panel()),
	)
	if m.status != "" {
		body += "\n" + m.styles.status.Render(m.status)
	}
	return body
}

func (m Model) panel() string {
	var sb strings.Builder
	sections := []struct {
		label string
		node  *figma.Node
	}{
		{"Selected", m.viewer.Selected()},
		{"Hovered", m.viewer.Hovered()},
	}
	for _, s := range sections {
		if s.node == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s %s\n", m.styles.label.Render(s.label), m.styles.title.Render(s.node.Name))
		fmt.Fprintf(&sb, "%s\n", m.styles.label.Render(fmt.Sprintf("%s · %s · %s", s.node.ID, s.node.Type, size(s.node))))
		for _, d := range style.Derive(s.node) {
			fmt.Fprintf(&sb, "%s: %s;\n", m.styles.property.Render(d.Property), d.Value.String())
		}
	}
	if sb.Len() == 0 {
		return m.styles.label.Render("Move to a layer to inspect it. Enter selects, q quits.")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) current() *figma.Node {
	it, ok := m.list.SelectedItem().(nodeItem)
	if !ok {
		return nil
	}
	return it.node
}

func (m *Model) hoverCurrent() {
	if n := m.current(); n != nil {
		m.report(m.viewer.Hover(n.ID))
	}
}

func (m *Model) report(err error) {
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
}

// Run starts the browser and blocks until it exits or ctx is cancelled.
// Nil in and out default to the terminal.
func Run(ctx context.Context, v *viewer.Viewer, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	} else {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(New(v), opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
