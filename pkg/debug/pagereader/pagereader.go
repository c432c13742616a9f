package main

import (
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

type pagerKeyMap struct {
	ui.CommonKeyMap
	ui.NavigationKeyMap
}

var pagerKeys = pagerKeyMap{
	CommonKeyMap:     ui.CommonKeys,
	NavigationKeyMap: ui.NavigationKeys,
}

type typeInfo struct {
	name     string
	schema   *record.Schema
	filePath primitives.Filepath
	stats    heap.Stats
}

type readerModel struct {
	currentView  string // "loading", "no_types", "menu", "records", "page_view"
	cursor       int
	rowCursor    int
	width        int
	height       int
	err          error
	dataDir      string
	types        []typeInfo
	selectedType *typeInfo

	columnHeaders []string
	recordData    [][]string

	currentPage primitives.PageNumber
	totalPages  primitives.PageNumber
	pageHeader  heap.PageHeader
	slotData    [][]string
}

func initialReaderModel(dataDir string) readerModel {
	return readerModel{
		dataDir:     dataDir,
		currentView: "loading",
		types:       []typeInfo{},
	}
}

func (m readerModel) Init() tea.Cmd {
	return initializeReader(m.dataDir)
}

type readerInitMsg struct {
	types []typeInfo
	err   error
}

// initializeReader loads the catalog, collects storage statistics for
// every defined type, and releases all handles before reporting back.
// The inspector never keeps files open between keystrokes.
func initializeReader(dataDir string) tea.Cmd {
	return func() tea.Msg {
		cat, err := catalog.Open(primitives.Filepath(dataDir))
		if err != nil {
			return readerInitMsg{err: err}
		}
		defer cat.Close()

		var types []typeInfo
		for _, name := range cat.TypeNames() {
			schema, err := cat.Lookup(name)
			if err != nil {
				continue
			}

			info := typeInfo{
				name:     name,
				schema:   schema,
				filePath: cat.DataFilePath(name),
			}

			file, err := heap.Open(info.filePath, schema.SlotSize())
			if err == nil {
				if stats, err := file.CollectStats(); err == nil {
					info.stats = stats
				}
				file.Close()
			}

			types = append(types, info)
		}

		return readerInitMsg{types: types}
	}
}

type recordsLoadedMsg struct {
	headers   []string
	data      [][]string
	pageCount primitives.PageNumber
	err       error
}

// loadTypeRecords scans every live slot of one type's data file and
// decodes the records for display, prefixed with their slot addresses.
func loadTypeRecords(info *typeInfo) tea.Cmd {
	return func() tea.Msg {
		file, err := heap.Open(info.filePath, info.schema.SlotSize())
		if err != nil {
			return recordsLoadedMsg{err: err}
		}
		defer file.Close()

		headers := []string{"page", "slot"}
		for i := 0; i < info.schema.NumFields(); i++ {
			name, _ := info.schema.FieldName(i)
			headers = append(headers, name)
		}

		var data [][]string
		iter := file.Scan()
		if err := iter.Open(); err != nil {
			return recordsLoadedMsg{err: err}
		}
		defer iter.Close()

		for {
			hasNext, err := iter.HasNext()
			if err != nil || !hasNext {
				break
			}

			addr, raw, err := iter.Next()
			if err != nil {
				break
			}

			row := []string{
				fmt.Sprintf("%d", addr.Page),
				fmt.Sprintf("%d", addr.Slot),
			}
			rec, err := record.Decode(info.schema, raw)
			if err != nil {
				for i := 0; i < info.schema.NumFields(); i++ {
					row = append(row, "?")
				}
			} else {
				row = append(row, rec.Values()...)
			}
			data = append(data, row)
		}

		pageCount, err := file.NumPages()
		if err != nil {
			return recordsLoadedMsg{err: err}
		}

		return recordsLoadedMsg{
			headers:   headers,
			data:      data,
			pageCount: pageCount,
		}
	}
}

type pageSlotsMsg struct {
	pageNo primitives.PageNumber
	header heap.PageHeader
	slots  [][]string
	err    error
}

// loadPageSlots reads one page and classifies each of its slots. A slot
// is free until its bitmap bit is set; once set it is live while the
// valid flag holds and deleted after. Deleted slots keep their record
// bytes on disk, so the remnant values are decoded and shown too.
func loadPageSlots(info *typeInfo, pageNo primitives.PageNumber) tea.Cmd {
	return func() tea.Msg {
		file, err := heap.Open(info.filePath, info.schema.SlotSize())
		if err != nil {
			return pageSlotsMsg{err: err}
		}
		defer file.Close()

		header, err := file.ReadHeader(pageNo)
		if err != nil {
			return pageSlotsMsg{err: err}
		}

		var slots [][]string
		for slot := primitives.SlotID(0); slot < heap.SlotsPerPage; slot++ {
			row := []string{fmt.Sprintf("%d", slot)}

			if !header.Allocated[slot] {
				row = append(row, "free")
				for i := 0; i < info.schema.NumFields(); i++ {
					row = append(row, "-")
				}
				slots = append(slots, row)
				continue
			}

			raw, err := file.ReadSlot(heap.SlotAddress{Page: pageNo, Slot: slot})
			if err != nil {
				row = append(row, "error")
				for i := 0; i < info.schema.NumFields(); i++ {
					row = append(row, "?")
				}
				slots = append(slots, row)
				continue
			}

			if raw[0] == record.SlotLive {
				row = append(row, "live")
			} else {
				row = append(row, "deleted")
				raw[0] = record.SlotLive // decode the remnant bytes
			}

			rec, err := record.Decode(info.schema, raw)
			if err != nil {
				for i := 0; i < info.schema.NumFields(); i++ {
					row = append(row, "?")
				}
			} else {
				row = append(row, rec.Values()...)
			}
			slots = append(slots, row)
		}

		return pageSlotsMsg{pageNo: pageNo, header: header, slots: slots}
	}
}

func (m readerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readerInitMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.types = msg.types
		if len(m.types) == 0 {
			m.currentView = "no_types"
		} else {
			m.currentView = "menu"
		}
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.columnHeaders = msg.headers
		m.recordData = msg.data
		m.totalPages = msg.pageCount
		m.currentPage = 0
		m.rowCursor = 0
		m.currentView = "records"
		return m, nil

	case pageSlotsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.currentPage = msg.pageNo
		m.pageHeader = msg.header
		m.slotData = msg.slots
		m.currentView = "page_view"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			if key.Matches(msg, pagerKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.currentView {
		case "no_types":
			if key.Matches(msg, pagerKeys.Quit) {
				return m, tea.Quit
			}

		case "menu":
			switch {
			case key.Matches(msg, pagerKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, pagerKeys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, pagerKeys.Down):
				if m.cursor < len(m.types)-1 {
					m.cursor++
				}
			case key.Matches(msg, pagerKeys.Select):
				if m.cursor < len(m.types) {
					m.selectedType = &m.types[m.cursor]
					return m, loadTypeRecords(m.selectedType)
				}
			}

		case "records":
			switch {
			case key.Matches(msg, pagerKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, pagerKeys.Back):
				m.currentView = "menu"
				m.recordData = nil
				m.columnHeaders = nil
				m.selectedType = nil
				m.rowCursor = 0
				return m, nil
			case key.Matches(msg, pagerKeys.Up):
				if m.rowCursor > 0 {
					m.rowCursor--
				}
			case key.Matches(msg, pagerKeys.Down):
				if m.rowCursor < len(m.recordData)-1 {
					m.rowCursor++
				}
			case key.Matches(msg, pagerKeys.Select):
				return m, loadPageSlots(m.selectedType, m.currentPage)
			}

		case "page_view":
			switch {
			case key.Matches(msg, pagerKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, pagerKeys.Back):
				m.currentView = "records"
				return m, nil
			case key.Matches(msg, pagerKeys.NextPage):
				if m.totalPages > 0 && m.currentPage < m.totalPages-1 {
					return m, loadPageSlots(m.selectedType, m.currentPage+1)
				}
			case key.Matches(msg, pagerKeys.PrevPage):
				if m.currentPage > 0 {
					return m, loadPageSlots(m.selectedType, m.currentPage-1)
				}
			case key.Matches(msg, pagerKeys.FirstPage):
				return m, loadPageSlots(m.selectedType, 0)
			case key.Matches(msg, pagerKeys.LastPage):
				if m.totalPages > 0 {
					return m, loadPageSlots(m.selectedType, m.totalPages-1)
				}
			}
		}
	}

	return m, nil
}

func (m readerModel) View() string {
	if m.err != nil {
		return ui.RenderError(m.err)
	}

	var b strings.Builder

	b.WriteString(ui.RenderTitle("🗄", "Data File Inspector") + "\n\n")

	switch m.currentView {
	case "loading":
		b.WriteString("Loading types...\n")
	case "no_types":
		b.WriteString("No types defined in this data directory.\n\n")
		b.WriteString(ui.HelpStyle.Render("Press q to quit"))
	case "menu":
		b.WriteString(m.renderMenu())
	case "records":
		b.WriteString(m.renderRecords())
	case "page_view":
		b.WriteString(m.renderPageView())
	}

	b.WriteString("\n" + m.renderStatusBar())

	return b.String()
}

func (m readerModel) renderMenu() string {
	var b strings.Builder

	b.WriteString(ui.RenderHeaderWithCount("Defined Types", len(m.types)) + "\n\n")

	for i, info := range m.types {
		line := fmt.Sprintf("%s (fields: %d, pk: %s, pages: %d, live: %d)",
			info.name,
			info.schema.NumFields(),
			info.schema.PKName(),
			info.stats.Pages,
			info.stats.LiveSlots)

		if i == m.cursor {
			b.WriteString(ui.SelectedItemStyle.Render("▶ "+line) + "\n")
		} else {
			b.WriteString(ui.ItemStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | enter: view records | q: quit"))

	return b.String()
}

func (m readerModel) renderRecords() string {
	if len(m.recordData) == 0 {
		return "No live records in this type.\n\n" +
			ui.HelpStyle.Render("enter: inspect page 0 | esc: back | q: quit")
	}

	var b strings.Builder

	title := ui.HeaderStyle.Render(fmt.Sprintf(" %s (%d records, %d pages) ",
		m.selectedType.name,
		len(m.recordData),
		m.totalPages))
	b.WriteString(title + "\n\n")

	colWidths := columnWidths(m.columnHeaders, m.recordData)

	// Window the rows around the cursor so long scans stay readable.
	visibleStart := max(0, m.rowCursor-10)
	visibleEnd := min(len(m.recordData), visibleStart+20)

	b.WriteString(ui.RenderTable(
		m.columnHeaders,
		m.recordData[visibleStart:visibleEnd],
		colWidths,
		m.rowCursor-visibleStart))

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("↑/↓: navigate | enter: inspect pages | esc: back | q: quit"))

	return b.String()
}

func (m readerModel) renderPageView() string {
	var b strings.Builder

	title := ui.HeaderStyle.Render(fmt.Sprintf(" %s | page %d (%d total) ",
		m.selectedType.name, m.currentPage, m.totalPages))
	b.WriteString(title + "\n\n")

	bitmap := make([]byte, 0, heap.SlotsPerPage)
	live, deleted, free := 0, 0, 0
	for slot, row := range m.slotData {
		switch row[1] {
		case "live":
			live++
		case "deleted":
			deleted++
		case "free":
			free++
		}
		if m.pageHeader.Allocated[slot] {
			bitmap = append(bitmap, '1')
		} else {
			bitmap = append(bitmap, '0')
		}
	}

	summary := ui.PageInfoStyle.Render(fmt.Sprintf("occupied: %d", m.pageHeader.AllocatedCount)) +
		ui.SuccessStyle.Render(fmt.Sprintf("live: %d", live)) +
		ui.WarningStyle.Render(fmt.Sprintf("deleted: %d", deleted)) +
		ui.ItemStyle.Render(fmt.Sprintf("free: %d", free)) +
		ui.ItemStyle.Render("bitmap: "+string(bitmap))
	b.WriteString(summary + "\n\n")

	headers := []string{"slot", "status"}
	for i := 0; i < m.selectedType.schema.NumFields(); i++ {
		name, _ := m.selectedType.schema.FieldName(i)
		headers = append(headers, name)
	}

	b.WriteString(ui.RenderTable(headers, m.slotData, columnWidths(headers, m.slotData), -1))

	b.WriteString("\n")
	b.WriteString(ui.HelpStyle.Render("n/p: next/prev page | g/G: first/last | esc: back | q: quit"))

	return b.String()
}

func (m readerModel) renderStatusBar() string {
	var status string
	switch m.currentView {
	case "menu":
		status = fmt.Sprintf(" Menu | Data Directory: %s | Types: %d ", m.dataDir, len(m.types))
	case "records":
		if m.selectedType != nil {
			status = fmt.Sprintf(" %s | Record: %d/%d | Pages: %d ",
				m.selectedType.name, m.rowCursor+1, len(m.recordData), m.totalPages)
		}
	case "page_view":
		status = fmt.Sprintf(" Page View | Page %d of %d | Slot size: %d bytes ",
			m.currentPage, m.totalPages, m.selectedType.schema.SlotSize())
	default:
		status = " Loading... "
	}
	return ui.RenderStatusBar(status)
}

func columnWidths(headers []string, data [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], 30)
	}
	return widths
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pagereader <data-directory>")
		os.Exit(1)
	}

	dataDir := os.Args[1]

	p := tea.NewProgram(
		initialReaderModel(dataDir),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
