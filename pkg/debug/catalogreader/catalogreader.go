package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ByRock010/CMPE321-Project4/pkg/catalog"
	"github.com/ByRock010/CMPE321-Project4/pkg/debug/ui"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
	"github.com/ByRock010/CMPE321-Project4/pkg/record"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var catalogKeys = ui.CommonKeys

// entryInfo is one raw catalog.meta line with its load disposition.
// The session loads the file leniently: damaged lines are skipped and
// duplicate names resolve to the last definition. This inspector makes
// both outcomes visible.
type entryInfo struct {
	lineNo int
	raw    string
	status string // "active", "superseded", "malformed"
	detail string
}

type catalogModel struct {
	currentView string // "menu", "entries", "schemas", "geometry"
	cursor      int
	width       int
	height      int
	err         error
	loaded      bool
	dataDir     string
	metaPath    string
	entries     []entryInfo
	schemas     []*record.Schema
}

func initialCatalogModel(dataDir string) catalogModel {
	return catalogModel{
		dataDir:     dataDir,
		currentView: "menu",
	}
}

func (m catalogModel) Init() tea.Cmd {
	return initializeCatalog(m.dataDir)
}

type catalogInitMsg struct {
	entries  []entryInfo
	schemas  []*record.Schema
	metaPath string
	err      error
}

// initializeCatalog reads catalog.meta twice: raw lines for the entry
// view, and through the catalog loader for the schemas the session
// would actually see. Handles are released before the message returns.
func initializeCatalog(dataDir string) tea.Cmd {
	return func() tea.Msg {
		cat, err := catalog.Open(primitives.Filepath(dataDir))
		if err != nil {
			return catalogInitMsg{err: err}
		}
		defer cat.Close()

		var schemas []*record.Schema
		for _, name := range cat.TypeNames() {
			if schema, err := cat.Lookup(name); err == nil {
				schemas = append(schemas, schema)
			}
		}

		metaPath := cat.MetaPath()
		file, err := os.Open(metaPath.String())
		if err != nil {
			return catalogInitMsg{err: err}
		}
		defer file.Close()

		var entries []entryInfo
		lineNo := 0
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			entries = append(entries, classifyEntry(lineNo, line, schemas))
		}
		if err := scanner.Err(); err != nil {
			return catalogInitMsg{err: err}
		}

		return catalogInitMsg{
			entries:  entries,
			schemas:  schemas,
			metaPath: metaPath.String(),
		}
	}
}

// classifyEntry parses one line independently and compares it with what
// the loader kept. A line that parses but disagrees with the loaded
// schema of its type was overridden by a later definition.
func classifyEntry(lineNo int, line string, schemas []*record.Schema) entryInfo {
	info := entryInfo{lineNo: lineNo, raw: line}

	parsed, err := catalog.ParseEntry(line)
	if err != nil {
		info.status = "malformed"
		info.detail = err.Error()
		return info
	}

	for _, schema := range schemas {
		if schema.TypeName == parsed.TypeName {
			if schema.Equals(parsed) {
				info.status = "active"
				info.detail = "loaded"
			} else {
				info.status = "superseded"
				info.detail = "later definition wins"
			}
			return info
		}
	}

	info.status = "superseded"
	info.detail = "not loaded"
	return info
}

func (m catalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogInitMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.schemas = msg.schemas
		m.metaPath = msg.metaPath
		m.loaded = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			if key.Matches(msg, catalogKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.currentView {
		case "menu":
			switch {
			case key.Matches(msg, catalogKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, catalogKeys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, catalogKeys.Down):
				if m.cursor < 2 {
					m.cursor++
				}
			case key.Matches(msg, catalogKeys.Select):
				views := []string{"entries", "schemas", "geometry"}
				m.currentView = views[m.cursor]
				m.cursor = 0
				return m, nil
			}

		case "entries", "schemas", "geometry":
			switch {
			case key.Matches(msg, catalogKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, catalogKeys.Back):
				m.currentView = "menu"
				m.cursor = 0
				return m, nil
			case key.Matches(msg, catalogKeys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, catalogKeys.Down):
				if m.cursor < m.rowCount()-1 {
					m.cursor++
				}
			}
		}
	}

	return m, nil
}

func (m catalogModel) rowCount() int {
	switch m.currentView {
	case "entries":
		return len(m.entries)
	case "schemas", "geometry":
		return len(m.schemas)
	}
	return 0
}

func (m catalogModel) View() string {
	if m.err != nil {
		return ui.RenderError(m.err)
	}

	if !m.loaded {
		return "Reading catalog...\n"
	}

	var b strings.Builder

	b.WriteString(ui.RenderTitle("📇", "Catalog Inspector") + "\n\n")

	switch m.currentView {
	case "menu":
		b.WriteString(m.renderMenu())
	case "entries":
		b.WriteString(m.renderEntries())
	case "schemas":
		b.WriteString(m.renderSchemas())
	case "geometry":
		b.WriteString(m.renderGeometry())
	}

	b.WriteString("\n" + m.renderStatusBar())

	return b.String()
}

func (m catalogModel) renderMenu() string {
	var b strings.Builder

	b.WriteString(ui.RenderHeaderWithCount("Select a View", -1) + "\n\n")

	items := []string{
		"ENTRIES - Raw catalog lines and their parse status",
		"SCHEMAS - Loaded type definitions",
		"GEOMETRY - Record and page layout per type",
	}

	for i, item := range items {
		if i == m.cursor {
			b.WriteString(ui.SelectedItemStyle.Render("▶ "+item) + "\n")
		} else {
			b.WriteString(ui.ItemStyle.Render("  "+item) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | enter: select | q: quit"))

	return b.String()
}

func (m catalogModel) renderEntries() string {
	if len(m.entries) == 0 {
		return "The catalog file is empty.\n\n" + ui.HelpStyle.Render("Press esc to go back | q to quit")
	}

	var b strings.Builder

	b.WriteString(ui.RenderHeaderWithCount("Catalog Entries", len(m.entries)) + "\n\n")

	headers := []string{"line", "status", "entry", "detail"}
	data := make([][]string, 0, len(m.entries))
	for _, entry := range m.entries {
		data = append(data, []string{
			fmt.Sprintf("%d", entry.lineNo),
			entry.status,
			entry.raw,
			entry.detail,
		})
	}

	b.WriteString(m.renderWindowedTable(headers, data))

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | esc: back to menu | q: quit"))

	return b.String()
}

func (m catalogModel) renderSchemas() string {
	if len(m.schemas) == 0 {
		return "No types loaded from the catalog.\n\n" + ui.HelpStyle.Render("Press esc to go back | q to quit")
	}

	var b strings.Builder

	b.WriteString(ui.RenderHeaderWithCount("Loaded Schemas", len(m.schemas)) + "\n\n")

	headers := []string{"type", "fields", "primary key"}
	data := make([][]string, 0, len(m.schemas))
	for _, schema := range m.schemas {
		fields := make([]string, 0, schema.NumFields())
		for i := 0; i < schema.NumFields(); i++ {
			name, _ := schema.FieldName(i)
			fieldType, _ := schema.TypeAtIndex(i)
			fields = append(fields, fmt.Sprintf("%s %s", name, fieldType))
		}
		data = append(data, []string{
			schema.TypeName,
			strings.Join(fields, ", "),
			schema.PKName(),
		})
	}

	b.WriteString(m.renderWindowedTable(headers, data))

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | esc: back to menu | q: quit"))

	return b.String()
}

func (m catalogModel) renderGeometry() string {
	if len(m.schemas) == 0 {
		return "No types loaded from the catalog.\n\n" + ui.HelpStyle.Render("Press esc to go back | q to quit")
	}

	var b strings.Builder

	b.WriteString(ui.RenderHeaderWithCount("Storage Geometry", len(m.schemas)) + "\n\n")

	headers := []string{"type", "record bytes", "slot bytes", "page bytes", "slots/page", "capacity"}
	data := make([][]string, 0, len(m.schemas))
	for _, schema := range m.schemas {
		slotSize := schema.SlotSize()
		pageSize := heap.PageHeaderSize + heap.SlotsPerPage*slotSize
		capacity := uint64(heap.SlotsPerPage) * uint64(primitives.MaxPagesPerFile)
		data = append(data, []string{
			schema.TypeName,
			fmt.Sprintf("%d", schema.RecordSize()),
			fmt.Sprintf("%d", slotSize),
			fmt.Sprintf("%d", pageSize),
			fmt.Sprintf("%d", heap.SlotsPerPage),
			fmt.Sprintf("%d", capacity),
		})
	}

	b.WriteString(m.renderWindowedTable(headers, data))

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | esc: back to menu | q: quit"))

	return b.String()
}

func (m catalogModel) renderWindowedTable(headers []string, data [][]string) string {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}
	for i := range colWidths {
		colWidths[i] = min(colWidths[i], 40)
	}

	visibleStart := max(0, m.cursor-10)
	visibleEnd := min(len(data), visibleStart+20)

	return ui.RenderTable(headers, data[visibleStart:visibleEnd], colWidths, m.cursor-visibleStart)
}

func (m catalogModel) renderStatusBar() string {
	var status string
	if m.currentView == "menu" {
		status = fmt.Sprintf(" Menu | %s | Types: %d ", m.metaPath, len(m.schemas))
	} else {
		position := fmt.Sprintf("%d/%d", m.cursor+1, m.rowCount())
		status = fmt.Sprintf(" %s | Position: %s ", strings.ToUpper(m.currentView), position)
	}
	return ui.RenderStatusBar(status)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: catalogreader <data-directory>")
		os.Exit(1)
	}

	dataDir := os.Args[1]

	p := tea.NewProgram(
		initialCatalogModel(dataDir),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
