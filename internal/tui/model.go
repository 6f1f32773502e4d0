// Package tui is the terminal dashboard: a sidebar of pages, summary views,
// and searchable tables with add, edit, delete, and CSV export.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/models"
	"github.com/tphummel/it_inventory/internal/nav"
	"github.com/tphummel/it_inventory/internal/report"
)

// narrowWidth is the terminal width below which navigating closes the sidebar.
const narrowWidth = 100

const maxColumnWidth = 24

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

// Model is the Bubble Tea model for the whole application.
type Model struct {
	ctx       context.Context
	inv       *inventory.Inventory
	logger    *slog.Logger
	exportDir string
	styles    styles

	nav           nav.State
	sidebarCursor int
	sidebarFocus  bool
	width, height int

	mode    mode
	sources map[nav.Page]source
	table   table.Model
	ids     []int64
	search  textinput.Model
	floor   int
	form    *form
	pending int64

	dashboard report.Dashboard
	rollup    report.Rollup

	status string
	err    error
}

// New returns the initial model showing the dashboard with the sidebar focused.
func New(ctx context.Context, inv *inventory.Inventory, logger *slog.Logger, exportDir string) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 128

	m := &Model{
		ctx:          ctx,
		inv:          inv,
		logger:       logger,
		exportDir:    exportDir,
		styles:       newStyles(),
		nav:          nav.New(),
		sidebarFocus: true,
		sources:      newSources(inv),
		table:        table.New(table.WithFocused(true)),
		search:       search,
		floor:        models.DefaultFloor,
	}
	m.refresh()
	return m
}

func (*Model) Init() tea.Cmd {
	return nil
}

// Page returns the page currently shown.
func (m *Model) Page() nav.Page { return m.nav.Page }

// Status returns the last status line message.
func (m *Model) Status() string { return m.status }

// Err returns the last error shown to the user, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) narrow() bool { return m.width > 0 && m.width < narrowWidth }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(5, m.height-10))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.handleSearchKey(msg)
		case modeForm:
			return m.handleFormKey(msg)
		case modeConfirmDelete:
			return m.handleConfirmKey(msg)
		default:
			return m.handleBrowseKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.handleTab()
		return m, nil
	}

	if m.sidebarFocus && m.nav.SidebarOpen {
		return m.handleSidebarKey(msg)
	}

	src, ok := m.sources[m.nav.Page]
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "a":
		m.openAddForm(src)
		return m, nil
	case "e":
		m.openEditForm(src)
		return m, nil
	case "d":
		if id, ok := m.selectedID(); ok {
			m.pending = id
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "f":
		if src.HasFloors() {
			m.floor = nextFloor(m.floor)
			m.refresh()
		}
		return m, nil
	case "x":
		m.export(src)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleTab opens and focuses a closed sidebar, focuses an open but
// unfocused one, and closes a focused one.
func (m *Model) handleTab() {
	switch {
	case !m.nav.SidebarOpen:
		m.nav = m.nav.ToggleSidebar()
		m.sidebarFocus = true
		m.sidebarCursor = int(m.nav.Page)
	case m.sidebarFocus:
		m.nav = m.nav.ToggleSidebar()
		m.sidebarFocus = false
	default:
		m.sidebarFocus = true
		m.sidebarCursor = int(m.nav.Page)
	}
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case "down", "j":
		if m.sidebarCursor < len(nav.Pages)-1 {
			m.sidebarCursor++
		}
	case "enter":
		m.navigate(nav.Pages[m.sidebarCursor])
	}
	return m, nil
}

func (m *Model) navigate(p nav.Page) {
	m.nav = m.nav.Navigate(p, m.narrow())
	m.sidebarFocus = false
	m.search.SetValue("")
	m.status, m.err = "", nil
	m.table.SetCursor(0)
	m.refresh()
	m.logger.Debug("navigate", "page", m.nav.Page.Slug())
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeBrowse
		return m, nil
	case "ctrl+s":
		m.submitForm()
		return m, nil
	case "enter":
		if f.onLast() {
			m.submitForm()
		} else {
			f.move(1)
		}
		return m, nil
	case "tab", "down":
		f.move(1)
		return m, nil
	case "shift+tab", "up":
		f.move(-1)
		return m, nil
	case "left":
		if f.cycle(-1) {
			return m, nil
		}
	case "right":
		if f.cycle(1) {
			return m, nil
		}
	}
	return m, f.update(msg)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		src := m.sources[m.nav.Page]
		id := m.pending
		m.mode = modeBrowse
		m.pending = 0
		if err := src.Delete(m.ctx, id); err != nil {
			m.fail("delete failed", err)
			return m, nil
		}
		m.logger.Info("record deleted", "page", m.nav.Page.Slug(), "id", id)
		m.status, m.err = "Record deleted", nil
		m.refresh()
	case "n", "N", "esc":
		m.mode = modeBrowse
		m.pending = 0
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m *Model) openAddForm(src source) {
	floor := 0
	if src.HasFloors() {
		floor = m.floor
	}
	m.form = newForm("Add "+m.nav.Page.String(), 0, src.Columns(), src.Blank(floor), src.Choices(), src.HasCustomFields())
	m.mode = modeForm
}

func (m *Model) openEditForm(src source) {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	values, err := src.Fields(m.ctx, id)
	if err != nil {
		m.fail("load record failed", err)
		return
	}
	m.form = newForm("Edit "+m.nav.Page.String(), id, src.Columns(), values, src.Choices(), src.HasCustomFields())
	m.mode = modeForm
}

func (m *Model) submitForm() {
	src := m.sources[m.nav.Page]
	values, err := m.form.values()
	if err != nil {
		m.form.err = err.Error()
		return
	}

	if m.form.editID == 0 {
		err = src.Create(m.ctx, values)
	} else {
		err = src.Update(m.ctx, m.form.editID, values)
	}
	if err != nil {
		m.form.err = err.Error()
		return
	}

	if m.form.editID == 0 {
		m.status = "Record added"
	} else {
		m.status = "Changes saved"
	}
	m.logger.Info("record saved", "page", m.nav.Page.Slug(), "edit_id", m.form.editID)
	m.err = nil
	m.form = nil
	m.mode = modeBrowse
	m.refresh()
}

func (m *Model) export(src source) {
	path, n, err := src.Export(m.ctx, m.exportDir, m.search.Value(), m.floor)
	if err != nil {
		m.fail("export failed", err)
		return
	}
	m.logger.Info("exported CSV", "path", path, "records", n)
	m.status, m.err = fmt.Sprintf("Exported %d records to %s", n, path), nil
}

func (m *Model) selectedID() (int64, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.ids) {
		return 0, false
	}
	return m.ids[i], true
}

func (m *Model) fail(msg string, err error) {
	m.logger.Error(msg, "page", m.nav.Page.Slug(), "error", err)
	m.err = fmt.Errorf("%s: %w", msg, err)
}

// refresh reloads the data the current page displays.
func (m *Model) refresh() {
	switch m.nav.Page {
	case nav.Dashboard, nav.DepartmentSummary:
		s, err := m.inv.Snapshot(m.ctx)
		if err != nil {
			m.fail("load inventory failed", err)
			return
		}
		m.dashboard = report.BuildDashboard(s)
		m.rollup = report.DepartmentRollup(s.PCs, s.Laptops, s.Servers)
		return
	}

	src, ok := m.sources[m.nav.Page]
	if !ok {
		return
	}
	rows, ids, err := src.Rows(m.ctx, m.search.Value(), m.floor)
	if err != nil {
		m.fail("load records failed", err)
		return
	}
	m.ids = ids

	cols := columnsFor(src.Columns(), rows)
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row(r))
	}
	// Clear rows first so the old rows are never rendered against new columns.
	// Clearing leaves the cursor at -1.
	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(tableRows)
	m.table.SetCursor(clampCursor(cursor, len(tableRows)))
}

// clampCursor keeps a table cursor on a row, or at 0 when there are none.
func clampCursor(cursor, rows int) int {
	return max(0, min(cursor, rows-1))
}

func columnsFor(names []string, rows [][]string) []table.Column {
	cols := make([]table.Column, len(names))
	for i, n := range names {
		w := len(n)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, len(r[i]))
			}
		}
		cols[i] = table.Column{Title: n, Width: min(w, maxColumnWidth)}
	}
	return cols
}

// nextFloor moves to the next floor tab, in ValidFloors order.
func nextFloor(current int) int {
	for i, f := range models.ValidFloors {
		if f == current {
			return models.ValidFloors[(i+1)%len(models.ValidFloors)]
		}
	}
	return models.ValidFloors[0]
}
