package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/debug/ui"
	"github.com/ByRock010/CMPE321-Project4/pkg/oplog"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     ui.CommonKeys.Up,
	Down:   ui.CommonKeys.Down,
	Select: ui.CommonKeys.Select,
	Back:   ui.CommonKeys.Back,
	Quit:   ui.CommonKeys.Quit,
}

type model struct {
	entries      []oplog.Entry
	cursor       int
	selected     *oplog.Entry
	viewport     viewport.Model
	width        int
	height       int
	detailMode   bool
	loaded       bool
	err          error
	logPath      string
	totalEntries int
}

func initialModel(logPath string) model {
	return model{
		logPath: logPath,
	}
}

func (m model) Init() tea.Cmd {
	return loadEntries(m.logPath)
}

type entriesLoadedMsg struct {
	entries []oplog.Entry
	err     error
}

func loadEntries(logPath string) tea.Cmd {
	return func() tea.Msg {
		entries, err := oplog.ReadAll(primitives.Filepath(logPath))
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.totalEntries = len(msg.entries)
		m.loaded = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if m.detailMode {
			switch {
			case key.Matches(msg, keys.Back):
				m.detailMode = false
				return m, nil
			case key.Matches(msg, keys.Quit):
				return m, tea.Quit
			}
		} else {
			switch {
			case key.Matches(msg, keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, keys.Down):
				if m.cursor < len(m.entries)-1 {
					m.cursor++
				}
			case key.Matches(msg, keys.Select):
				if m.cursor < len(m.entries) {
					m.selected = &m.entries[m.cursor]
					m.detailMode = true
					m.viewport.SetContent(m.renderDetailView())
				}
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return ui.RenderError(m.err)
	}

	if !m.loaded {
		return "Loading operation log...\n"
	}

	var b strings.Builder

	title := ui.RenderTitle("🗂", "Operation Log Viewer")
	b.WriteString(title + "\n\n")

	switch {
	case len(m.entries) == 0:
		b.WriteString("The operation log is empty.\n\n")
		b.WriteString(ui.HelpStyle.Render("Press q to quit"))
	case m.detailMode:
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(ui.HelpStyle.Render("Press esc to go back | q to quit"))
	default:
		b.WriteString(m.renderListView())
	}

	statusBar := m.renderStatusBar()
	b.WriteString("\n" + statusBar)

	return b.String()
}

func (m model) renderListView() string {
	var b strings.Builder

	header := ui.RenderHeaderWithCount("Logged Operations", m.totalEntries)
	b.WriteString(header + "\n\n")

	visibleStart := max(0, m.cursor-10)
	visibleEnd := min(len(m.entries), visibleStart+20)
	for i := visibleStart; i < visibleEnd; i++ {
		entryLine := m.formatEntryLine(m.entries[i], i)
		if i == m.cursor {
			entryLine = ui.SelectedItemStyle.Render("▶ " + entryLine)
		} else {
			entryLine = ui.ItemStyle.Render("  " + entryLine)
		}
		b.WriteString(entryLine + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | enter: view details | q: quit"))

	return b.String()
}

func (m model) formatEntryLine(entry oplog.Entry, index int) string {
	opStr := m.colorizeOperation(entry.Op)
	statusStr := m.colorizeStatus(entry)

	op := ui.ValueStyle.Render(ui.TruncateString(entry.Op, 48))
	timeStr := lipgloss.NewStyle().Foreground(ui.MutedColor).Render(entry.Timestamp.Format("15:04:05"))

	return fmt.Sprintf("[%4d] %s │ %s │ %s │ %s", index+1, statusStr, opStr, op, timeStr)
}

// colorizeOperation labels a raw command by its leading operation words.
func (m model) colorizeOperation(op string) string {
	words := strings.Fields(strings.ToLower(op))

	verb := ""
	if len(words) > 0 {
		verb = words[0]
	}
	object := ""
	if len(words) > 1 {
		object = words[1]
	}

	var color lipgloss.Color
	var icon string
	var name string

	switch {
	case verb == "create" && object == "type":
		color = lipgloss.Color(ui.SecondaryColor.Dark)
		icon = "◆"
		name = "CREATE TYPE  "
	case verb == "create" && object == "record":
		color = lipgloss.Color(ui.SuccessColor.Dark)
		icon = "+"
		name = "CREATE RECORD"
	case verb == "search" && object == "record":
		color = lipgloss.Color(ui.PrimaryColor.Dark)
		icon = "◎"
		name = "SEARCH RECORD"
	case verb == "delete" && object == "record":
		color = lipgloss.Color(ui.ErrorColor.Dark)
		icon = "−"
		name = "DELETE RECORD"
	default:
		color = lipgloss.Color(ui.MutedColor.Dark)
		icon = "?"
		name = "UNRECOGNIZED "
	}

	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + name)
}

func (m model) colorizeStatus(entry oplog.Entry) string {
	if entry.Succeeded() {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.SuccessColor.Dark)).
			Render("✓")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ui.ErrorColor.Dark)).
		Render("✗")
}

func (m model) renderDetailView() string {
	if m.selected == nil {
		return "No entry selected"
	}

	var b strings.Builder

	entry := m.selected

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ui.PrimaryColor).Render("Entry Details") + "\n\n")
	b.WriteString(ui.LabelStyle.Render("Operation: ") + m.colorizeOperation(entry.Op) + "\n\n")

	b.WriteString(m.renderKeyValue("Timestamp", entry.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(m.renderKeyValue("Unix Time", fmt.Sprintf("%d", entry.Timestamp.Unix())))
	b.WriteString(m.renderKeyValue("Status", entry.Status))
	b.WriteString(m.renderKeyValue("Raw Command", entry.Op))

	words := strings.Fields(entry.Op)
	if len(words) > 2 {
		b.WriteString("\n")
		b.WriteString(ui.LabelStyle.Render("Command Breakdown:") + "\n")
		b.WriteString(m.renderKeyValue("  Operation", strings.Join(words[:2], " ")))
		b.WriteString(m.renderKeyValue("  Type Name", words[2]))
		if len(words) > 3 {
			b.WriteString(m.renderKeyValue("  Arguments", strings.Join(words[3:], " ")))
		}
	}

	return ui.DetailStyle.Render(b.String())
}

func (m model) renderKeyValue(key, value string) string {
	return fmt.Sprintf("%s %s\n",
		ui.LabelStyle.Render(key+":"),
		ui.ValueStyle.Render(value))
}

func (m model) renderStatusBar() string {
	position := fmt.Sprintf("%d/%d", m.cursor+1, m.totalEntries)

	if m.detailMode {
		return ui.RenderStatusBar(fmt.Sprintf(" Detail View | Position: %s ", position))
	}

	return ui.RenderStatusBar(fmt.Sprintf(" List View | Position: %s | %s ", position, m.logPath))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: logreader <path-to-log.csv>")
		os.Exit(1)
	}

	logPath := os.Args[1]

	p := tea.NewProgram(
		initialModel(logPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
