// Package nav holds the application's view-selection state: which page is
// showing and whether the sidebar is open.
package nav

// Page identifies one screen of the application.
type Page int

const (
	Dashboard Page = iota
	PCInfo
	LaptopInfo
	ServerInfo
	MouseLog
	KeyboardLog
	SSDLog
	DepartmentSummary
)

// Pages lists every page in sidebar order.
var Pages = []Page{
	Dashboard,
	PCInfo,
	LaptopInfo,
	ServerInfo,
	MouseLog,
	KeyboardLog,
	SSDLog,
	DepartmentSummary,
}

var titles = map[Page]string{
	Dashboard:         "Dashboard",
	PCInfo:            "PC Info",
	LaptopInfo:        "Laptop Info",
	ServerInfo:        "Server Info",
	MouseLog:          "Mouse Log",
	KeyboardLog:       "Keyboard Log",
	SSDLog:            "SSD Log",
	DepartmentSummary: "Department Summary",
}

var slugs = map[Page]string{
	Dashboard:         "dashboard",
	PCInfo:            "pcs",
	LaptopInfo:        "laptops",
	ServerInfo:        "servers",
	MouseLog:          "mouse-logs",
	KeyboardLog:       "keyboard-logs",
	SSDLog:            "ssd-logs",
	DepartmentSummary: "departments",
}

// Valid reports whether p is one of the known pages.
func (p Page) Valid() bool {
	_, ok := titles[p]
	return ok
}

// String returns the page title shown in the sidebar.
func (p Page) String() string {
	if t, ok := titles[p]; ok {
		return t
	}
	return titles[Dashboard]
}

// Slug is the page's stable URL segment.
func (p Page) Slug() string {
	if s, ok := slugs[p]; ok {
		return s
	}
	return slugs[Dashboard]
}

// IsCollection reports whether the page lists records of one collection.
func (p Page) IsCollection() bool {
	return p >= PCInfo && p <= SSDLog
}

// ParsePage returns the page with the given slug.
func ParsePage(slug string) (Page, bool) {
	for _, p := range Pages {
		if slugs[p] == slug {
			return p, true
		}
	}
	return Dashboard, false
}

// State is the current page and sidebar visibility.
type State struct {
	Page        Page
	SidebarOpen bool
}

// New returns the initial state: the dashboard with the sidebar open.
func New() State {
	return State{Page: Dashboard, SidebarOpen: true}
}

// Navigate switches to page. Unknown pages fall back to the dashboard. On
// narrow layouts the sidebar closes so the page is visible.
func (s State) Navigate(page Page, narrow bool) State {
	if !page.Valid() {
		page = Dashboard
	}
	s.Page = page
	if narrow {
		s.SidebarOpen = false
	}
	return s
}

// ToggleSidebar opens a closed sidebar and closes an open one.
func (s State) ToggleSidebar() State {
	s.SidebarOpen = !s.SidebarOpen
	return s
}
