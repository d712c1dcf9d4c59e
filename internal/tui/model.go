// Package tui implements the interactive rule match browser used by
// the preview command.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(cli.SubtleColor)
)

// Model is the bubbletea model of the match browser: a table of
// matched rules with a detail pane for the selected match's evidence.
type Model struct {
	reading *model.Reading
	table   table.Model
	detail  viewport.Model
	keys    keyMap
	width   int
	height  int
	help    bool
	done    bool
}

// NewModel builds the browser over a derived reading.
func NewModel(reading *model.Reading) Model {
	columns := []table.Column{
		{Title: "Pri", Width: 4},
		{Title: "Rule", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "Impact", Width: 9},
		{Title: "Conf", Width: 5},
	}

	rows := make([]table.Row, len(reading.Matches))
	for i, m := range reading.Matches {
		rows[i] = table.Row{
			fmt.Sprintf("%d", m.Priority),
			m.RuleKey,
			m.Category,
			string(m.Impact),
			fmt.Sprintf("%.2f", m.Confidence),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	m := Model{
		reading: reading,
		table:   t,
		detail:  viewport.New(80, 10),
		keys:    keys,
	}
	m.refreshDetail()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.detail.Width = msg.Width - 4
		m.detail.Height = max(4, msg.Height-m.table.Height()-8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help = !m.help
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.refreshDetail()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Rule matches — reading %s (rules v%d)",
		m.reading.ID, m.reading.RuleSetVersion)))
	b.WriteString("\n\n")

	if len(m.reading.Matches) == 0 {
		b.WriteString(helpStyle.Render("No rules matched this chart."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(m.detail.View()))
		b.WriteString("\n")
	}

	if m.help {
		b.WriteString(helpStyle.Render("↑/k previous · ↓/j next · ? help · q quit"))
	} else {
		b.WriteString(helpStyle.Render("? for help · q to quit"))
	}
	return b.String()
}

// Selected returns the currently selected match, if any.
func (m Model) Selected() (model.RuleMatch, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.reading.Matches) {
		return model.RuleMatch{}, false
	}
	return m.reading.Matches[idx], true
}

func (m *Model) refreshDetail() {
	match, ok := m.Selected()
	if !ok {
		m.detail.SetContent("")
		return
	}

	var b strings.Builder
	b.WriteString(match.RenderedTemplate())
	b.WriteString("\n\n")
	for _, ev := range match.Evidence {
		b.WriteString("· ")
		b.WriteString(cli.FormatEvidence(ev))
		b.WriteString("\n")
	}
	if len(match.Bindings) > 0 {
		b.WriteString("\nBindings:\n")
		for _, name := range sortedKeys(match.Bindings) {
			b.WriteString(fmt.Sprintf("  %s = %s\n", name, match.Bindings[name]))
		}
	}
	m.detail.SetContent(b.String())
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
