// Package report derives dashboard summaries from the raw inventory lists.
// Nothing here is stored; every function recomputes from its inputs.
package report

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tphummel/it_inventory/internal/models"
)

// RecentActivityLimit is the number of log entries shown on the dashboard.
const RecentActivityLimit = 5

// Peripheral categories, used to tag merged log entries.
const (
	CategoryMouse    = "Mouse"
	CategoryKeyboard = "Keyboard"
	CategorySSD      = "SSD"
)

// Snapshot is the full set of lists the aggregations read from.
type Snapshot struct {
	PCs          []models.PCInfo
	Laptops      []models.LaptopInfo
	Servers      []models.ServerInfo
	MouseLogs    []models.PeripheralLog
	KeyboardLogs []models.PeripheralLog
	SSDLogs      []models.PeripheralLog
}

// Usage splits a peripheral log list into assigned and unassigned entries.
type Usage struct {
	Used    int `json:"used"`
	InStock int `json:"inStock"`
}

// AssetTotal is the record count for one asset category.
type AssetTotal struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Rollup is the per-department asset count table.
type Rollup struct {
	Departments []models.DepartmentAssetSummary `json:"departments"`
	Total       int                             `json:"total"`
}

// Activity is one peripheral log entry in the recent activity feed.
type Activity struct {
	Category string `json:"category"`
	models.PeripheralLog
}

// CategoryLogs pairs a peripheral category with its log list.
type CategoryLogs struct {
	Category string
	Logs     []models.PeripheralLog
}

// Dashboard is everything the overview page shows.
type Dashboard struct {
	Assets         []AssetTotal     `json:"assets"`
	Usage          map[string]Usage `json:"usage"`
	RecentActivity []Activity       `json:"recentActivity"`
}

// UsageRatio counts entries assigned to a PC or a user as used.
func UsageRatio(logs []models.PeripheralLog) Usage {
	var u Usage
	for _, l := range logs {
		if l.InUse() {
			u.Used++
		}
	}
	u.InStock = len(logs) - u.Used
	return u
}

// AssetTotals returns the PC, laptop, and server counts in that order.
func AssetTotals(pcs []models.PCInfo, laptops []models.LaptopInfo, servers []models.ServerInfo) []AssetTotal {
	return []AssetTotal{
		{Category: "PCs", Count: len(pcs)},
		{Category: "Laptops", Count: len(laptops)},
		{Category: "Servers", Count: len(servers)},
	}
}

// DepartmentRollup counts PCs, laptops, and servers per department. Records
// with a blank department are left out. Rows are ordered by department name
// and numbered from 1.
func DepartmentRollup(pcs []models.PCInfo, laptops []models.LaptopInfo, servers []models.ServerInfo) Rollup {
	counts := make(map[string]int)
	add := func(dept string) {
		if strings.TrimSpace(dept) == "" {
			return
		}
		counts[dept]++
	}
	for _, p := range pcs {
		add(p.Department)
	}
	for _, l := range laptops {
		add(l.Department)
	}
	for _, s := range servers {
		add(s.Department)
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	col := collate.New(language.Und)
	slices.SortFunc(names, func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	r := Rollup{Departments: make([]models.DepartmentAssetSummary, 0, len(names))}
	for i, name := range names {
		r.Departments = append(r.Departments, models.DepartmentAssetSummary{
			ID:         i + 1,
			Department: name,
			Quantity:   counts[name],
		})
		r.Total += counts[name]
	}
	return r
}

// RecentActivity merges the given log lists and returns at most n entries,
// newest id first. Entries with equal ids keep their input order.
func RecentActivity(n int, sources ...CategoryLogs) []Activity {
	var merged []Activity
	for _, src := range sources {
		for _, l := range src.Logs {
			merged = append(merged, Activity{Category: src.Category, PeripheralLog: l})
		}
	}
	slices.SortStableFunc(merged, func(a, b Activity) int {
		return cmp.Compare(b.ID, a.ID)
	})
	if n < 0 {
		n = 0
	}
	if len(merged) > n {
		merged = merged[:n]
	}
	if merged == nil {
		merged = []Activity{}
	}
	return merged
}

// BuildDashboard composes the overview page from a snapshot.
func BuildDashboard(s Snapshot) Dashboard {
	return Dashboard{
		Assets: AssetTotals(s.PCs, s.Laptops, s.Servers),
		Usage: map[string]Usage{
			CategoryMouse:    UsageRatio(s.MouseLogs),
			CategoryKeyboard: UsageRatio(s.KeyboardLogs),
			CategorySSD:      UsageRatio(s.SSDLogs),
		},
		RecentActivity: RecentActivity(RecentActivityLimit, s.PeripheralSources()...),
	}
}

// PeripheralSources returns the three log lists tagged with their category.
func (s Snapshot) PeripheralSources() []CategoryLogs {
	return []CategoryLogs{
		{Category: CategoryMouse, Logs: s.MouseLogs},
		{Category: CategoryKeyboard, Logs: s.KeyboardLogs},
		{Category: CategorySSD, Logs: s.SSDLogs},
	}
}
