package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/database"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the shell state
type Model struct {
	session       *database.Database
	commandEditor textarea.Model
	resultTable   table.Model
	spinner       spinner.Model
	help          help.Model
	highlighter   *CommandHighlighter

	width       int
	height      int
	executing   bool
	showHelp    bool
	lastCommand string
	lastResult  database.Result
	history     []string

	lastOpTime time.Duration
	keys       keyMap
}

func NewModel(db *database.Database) Model {
	ta := textarea.New()
	ta.Placeholder = "create record planet 10 Arrakis 2"
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(bgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(textMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(textPrimary)

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Results", Width: 80}}),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	// Initialize spinner
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		session:       db,
		commandEditor: ta,
		resultTable:   t,
		spinner:       sp,
		help:          help.New(),
		highlighter:   NewCommandHighlighter(),
		keys:          keys,
		history:       make([]string, 0),
		showHelp:      false,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.executing {
			return m, nil // Ignore input while executing
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Execute):
			command := m.commandEditor.Value()
			if strings.TrimSpace(command) == "" {
				return m, nil
			}
			m.executing = true
			return m, m.executeCommand(command)

		case key.Matches(msg, m.keys.Clear):
			m.commandEditor.SetValue("")
			m.lastCommand = ""
			m.lastResult = database.Result{}

		case key.Matches(msg, m.keys.ShowTypes):
			m.executing = true
			return m, m.showTypes()

		case key.Matches(msg, m.keys.ShowStats):
			m.executing = true
			return m, m.showStatistics()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}

	case commandResultMsg:
		m.executing = false
		m.lastCommand = msg.command
		m.lastResult = msg.result
		m.lastOpTime = msg.duration

		if msg.result.Success {
			m.history = append(m.history, msg.command)
			m.updateResultDisplay()
		}

	case spinner.TickMsg:
		if m.executing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	// Update sub-components
	if !m.executing {
		var cmd tea.Cmd
		m.commandEditor, cmd = m.commandEditor.Update(msg)
		cmds = append(cmds, cmd)

		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sections []string

	// Header with session counters
	header := m.renderHeader()
	sections = append(sections, header)

	// Command editor section
	editorSection := m.renderCommandEditor()
	sections = append(sections, editorSection)

	// Results or executing spinner
	switch {
	case m.executing:
		sections = append(sections, m.renderExecuting())
	case m.lastCommand == "":
		// Nothing run yet
	case !m.lastResult.Success:
		sections = append(sections, m.renderError())
	case len(m.lastResult.Rows) > 0:
		sections = append(sections, m.renderResultTable())
	case m.lastResult.Message != "":
		sections = append(sections, m.renderMessage())
	}

	// Status bar
	sections = append(sections, m.renderStatusBar())

	// Help overlay
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{
			m.keys.Execute,
			m.keys.Clear,
			m.keys.ShowTypes,
			m.keys.ShowStats,
		},
		{
			m.keys.ScrollUp,
			m.keys.ScrollDown,
			m.keys.PageUp,
			m.keys.PageDown,
		},
		{
			m.keys.Help,
			m.keys.Quit,
		},
	})

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText)
}

func (m Model) renderHeader() string {
	info := m.session.Info()

	title := titleStyle.Render("🏜 Dune Archive Shell")
	badge := dirBadgeStyle.Render(fmt.Sprintf("📁 %s", info.DataDir))
	counters := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Types: %d | Ops: %d | Failed: %d",
			info.TypeCount, info.OpsExecuted, info.OpsFailed))

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		"  ",
		badge,
		"  ",
		counters,
	)

	separatorWidth := m.width - 4
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := strings.Repeat("─", separatorWidth)
	sepStyle := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(separator)

	return header + "\n" + sepStyle
}

func (m Model) renderCommandEditor() string {
	label := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Command Editor")

	editor := editorStyle.Render(m.commandEditor.View())

	return fmt.Sprintf("%s\n%s", label, editor)
}

func (m Model) renderExecuting() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		m.spinner.View(),
		" Executing command...",
	)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(" ⚠ FAILED ")
	message := m.lastResult.Message
	if message == "" && m.lastResult.Error != nil {
		message = m.lastResult.Error.Error()
	}

	content := fmt.Sprintf("%s %s %s",
		m.highlighter.Highlight(m.lastCommand),
		icon,
		lipgloss.NewStyle().Foreground(errorColor).Render(message))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errorColor).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderResultTable() string {
	// Create table columns
	columns := make([]table.Column, len(m.lastResult.Columns))
	for i, col := range m.lastResult.Columns {
		width := m.calculateColumnWidth(col, i)
		columns[i] = table.Column{
			Title: col,
			Width: width,
		}
	}

	// Convert result rows to table rows
	rows := make([]table.Row, len(m.lastResult.Rows))
	for i, row := range m.lastResult.Rows {
		rows[i] = table.Row(row)
	}

	// Update table
	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(rows)

	// Result header
	header := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(fmt.Sprintf("✓ %d row(s) in %v", len(rows), m.lastOpTime))

	echo := m.highlighter.Highlight(m.lastCommand)

	return fmt.Sprintf("%s\n%s\n%s", echo, header, m.resultTable.View())
}

func (m Model) renderMessage() string {
	icon := successStyle.Render(" ✓ ")
	message := m.lastResult.Message

	return lipgloss.NewStyle().
		Foreground(accentColor).
		Padding(1, 0).
		Render(fmt.Sprintf("%s %s %s",
			m.highlighter.Highlight(m.lastCommand), icon, message))
}

func (m Model) renderStatusBar() string {
	status := "● session open"
	statusColor := accentColor

	timer := ""
	if m.lastOpTime > 0 {
		timer = fmt.Sprintf(" | Last op: %v", m.lastOpTime)
	}

	count := ""
	if len(m.history) > 0 {
		count = fmt.Sprintf(" | %d commands run", len(m.history))
	}

	helpHint := " | Press Ctrl+H for help"
	content := lipgloss.NewStyle().
		Foreground(statusColor).
		Render(status) +
		lipgloss.NewStyle().
			Foreground(textMuted).
			Render(timer+count+helpHint)

	return statusBarStyle.
		Width(m.width - 4).
		Render(content)
}

func (m Model) calculateColumnWidth(columnName string, index int) int {
	maxWidth := 30
	minWidth := 10

	// Start with column name length
	width := len(columnName) + 2

	// Check data width
	for _, row := range m.lastResult.Rows {
		if index < len(row) {
			dataWidth := len(row[index]) + 2
			if dataWidth > width {
				width = dataWidth
			}
		}
	}

	// Apply bounds
	if width < minWidth {
		width = minWidth
	} else if width > maxWidth {
		width = maxWidth
	}

	return width
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	editorHeight := 3
	resultHeight := m.height - editorHeight - 10 // Leave room for header/status

	m.commandEditor.SetWidth(m.width - 6)
	m.resultTable.SetHeight(resultHeight)
}

func (m *Model) updateResultDisplay() {
	if len(m.lastResult.Rows) > 0 {
		m.resultTable.Focus()
	}
}

type commandResultMsg struct {
	command  string
	result   database.Result
	duration time.Duration
}

func (m Model) executeCommand(command string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result := m.session.Execute(command)

		return commandResultMsg{
			command:  strings.TrimSpace(command),
			result:   result,
			duration: time.Since(start),
		}
	}
}

// showTypes lists the defined types with their schemas
func (m Model) showTypes() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		names := m.session.Types()
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			schema, err := m.session.Schema(name)
			if err != nil {
				continue
			}

			fields := make([]string, 0, schema.NumFields())
			for i := 0; i < schema.NumFields(); i++ {
				fieldName, _ := schema.FieldName(i)
				fieldType, _ := schema.TypeAtIndex(i)
				fields = append(fields, fmt.Sprintf("%s %s", fieldName, fieldType))
			}

			rows = append(rows, []string{name, strings.Join(fields, ", "), schema.PKName()})
		}

		result := database.Result{
			Success: true,
			Columns: []string{"type", "fields", "primary key"},
			Rows:    rows,
			Message: "defined types",
		}
		if len(rows) == 0 {
			result.Rows = nil
			result.Message = "no types defined yet"
		}

		return commandResultMsg{
			command:  "show types",
			result:   result,
			duration: time.Since(start),
		}
	}
}

// showStatistics displays per-type storage statistics
func (m Model) showStatistics() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		stats, err := m.session.StorageStats()
		if err != nil {
			return commandResultMsg{
				command:  "storage stats",
				result:   database.Result{Success: false, Message: err.Error(), Error: err},
				duration: time.Since(start),
			}
		}

		names := make([]string, 0, len(stats))
		for name := range stats {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			s := stats[name]
			rows = append(rows, []string{
				name,
				fmt.Sprintf("%d", s.Pages),
				fmt.Sprintf("%d", s.AllocatedSlots),
				fmt.Sprintf("%d", s.LiveSlots),
				fmt.Sprintf("%d", s.DeletedSlots),
				fmt.Sprintf("%d", s.FreeSlots),
			})
		}

		result := database.Result{
			Success: true,
			Columns: []string{"type", "pages", "allocated", "live", "deleted", "free"},
			Rows:    rows,
			Message: "storage statistics",
		}
		if len(rows) == 0 {
			result.Rows = nil
			result.Message = "no types defined yet"
		}

		return commandResultMsg{
			command:  "storage stats",
			result:   result,
			duration: time.Since(start),
		}
	}
}
