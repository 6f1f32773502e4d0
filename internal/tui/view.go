package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tphummel/it_inventory/internal/nav"
	"github.com/tphummel/it_inventory/internal/report"
)

const (
	emptyMessage = "No records found"
	barWidth     = 30
)

func (m *Model) View() string {
	var body string
	switch m.mode {
	case modeForm:
		body = m.viewForm()
	case modeConfirmDelete:
		body = m.viewConfirm()
	default:
		body = m.viewPage()
	}

	content := m.styles.content.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.nav.Page.String()),
		body,
		m.viewStatus(),
		m.styles.help.Render(m.helpLine()),
	))
	if !m.nav.SidebarOpen {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), content)
}

func (m *Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("IT Inventory"))
	b.WriteString("\n")
	for i, p := range nav.Pages {
		cursor := "  "
		if m.sidebarFocus && i == m.sidebarCursor {
			cursor = m.styles.sidebarCursor.Render("> ")
		}
		label := m.styles.sidebarItem.Render(p.String())
		if p == m.nav.Page {
			label = m.styles.sidebarActive.Render(p.String())
		}
		b.WriteString(cursor + label + "\n")
	}
	return m.styles.sidebar.Render(b.String())
}

func (m *Model) viewPage() string {
	switch m.nav.Page {
	case nav.Dashboard:
		return m.viewDashboard()
	case nav.DepartmentSummary:
		return m.viewRollup()
	}
	return m.viewTable()
}

func (m *Model) viewDashboard() string {
	var b strings.Builder

	b.WriteString(m.styles.label.Render("Assets") + "\n")
	for _, a := range m.dashboard.Assets {
		fmt.Fprintf(&b, "  %-10s %d\n", a.Category, a.Count)
	}

	b.WriteString("\n" + m.styles.label.Render("Peripherals") + "\n")
	for _, cat := range []string{report.CategoryMouse, report.CategoryKeyboard, report.CategorySSD} {
		u := m.dashboard.Usage[cat]
		fmt.Fprintf(&b, "  %-10s %s used %d / in stock %d\n", cat, m.usageBar(u), u.Used, u.InStock)
	}

	b.WriteString("\n" + m.styles.label.Render("Recent activity") + "\n")
	if len(m.dashboard.RecentActivity) == 0 {
		b.WriteString("  " + m.styles.empty.Render(emptyMessage) + "\n")
	}
	for _, a := range m.dashboard.RecentActivity {
		who := a.PCUsername
		if who == "" {
			who = a.PCName
		}
		fmt.Fprintf(&b, "  %-9s %-20s %-14s %s %s\n", a.Category, a.ProductName, who, a.Date, a.Time)
	}
	return b.String()
}

// usageBar draws used and in-stock counts as a proportional bar.
func (m *Model) usageBar(u report.Usage) string {
	total := u.Used + u.InStock
	if total == 0 {
		return m.styles.help.Render(strings.Repeat("·", barWidth))
	}
	used := u.Used * barWidth / total
	return m.styles.barUsed.Render(strings.Repeat("█", used)) +
		m.styles.barStock.Render(strings.Repeat("░", barWidth-used))
}

func (m *Model) viewRollup() string {
	if len(m.rollup.Departments) == 0 {
		return m.styles.empty.Render(emptyMessage)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-24s %s\n", "#", "Department", "Quantity")
	for _, d := range m.rollup.Departments {
		fmt.Fprintf(&b, "%-4d %-24s %d\n", d.ID, d.Department, d.Quantity)
	}
	fmt.Fprintf(&b, "%-4s %-24s %d\n", "", "Total", m.rollup.Total)
	return b.String()
}

func (m *Model) viewTable() string {
	var parts []string
	if src, ok := m.sources[m.nav.Page]; ok && src.HasFloors() {
		parts = append(parts, m.viewFloorTabs())
	}
	if m.mode == modeSearch || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	if len(m.ids) == 0 {
		parts = append(parts, m.styles.empty.Render(emptyMessage))
	} else {
		parts = append(parts, m.table.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewFloorTabs() string {
	tabs := make([]string, 0, 3)
	for _, f := range floorChoices() {
		label := "Floor " + f
		if f == strconv.Itoa(m.floor) {
			tabs = append(tabs, m.styles.sidebarActive.Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.help.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) viewForm() string {
	f := m.form
	var b strings.Builder
	b.WriteString(m.styles.title.Render(f.title) + "\n")
	for i, fld := range f.fields {
		label := m.styles.label.Render(fld.name)
		if i == f.focus {
			label = m.styles.focused.Render(fld.name)
		}
		value := fld.input.View()
		if len(fld.choices) > 0 {
			value = "< " + fld.input.Value() + " >"
		}
		b.WriteString(label + " " + value + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + m.styles.error.Render(f.err) + "\n")
	}
	return b.String()
}

func (m *Model) viewConfirm() string {
	return m.styles.dialog.Render(fmt.Sprintf("Delete record %d? (y/n)", m.pending))
}

func (m *Model) viewStatus() string {
	if m.err != nil {
		return m.styles.error.Render(m.err.Error())
	}
	return m.styles.status.Render(m.status)
}

func (m *Model) helpLine() string {
	switch {
	case m.mode == modeForm:
		return "tab/↑↓ move • ←/→ choose • enter next • ctrl+s save • esc cancel"
	case m.mode == modeConfirmDelete:
		return "y confirm • n cancel"
	case m.mode == modeSearch:
		return "type to filter • enter keep • esc clear"
	case m.sidebarFocus && m.nav.SidebarOpen:
		return "↑/↓ select • enter open • tab close sidebar • q quit"
	case m.nav.Page == nav.PCInfo:
		return "/ search • a add • e edit • d delete • f floor • x export • tab sidebar • q quit"
	case m.nav.Page.IsCollection():
		return "/ search • a add • e edit • d delete • x export • tab sidebar • q quit"
	}
	return "tab sidebar • q quit"
}
