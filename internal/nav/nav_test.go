package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, Dashboard, s.Page)
	assert.True(t, s.SidebarOpen)
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name        string
		page        Page
		narrow      bool
		wantPage    Page
		wantSidebar bool
	}{
		{"wide keeps sidebar", ServerInfo, false, ServerInfo, true},
		{"narrow closes sidebar", MouseLog, true, MouseLog, false},
		{"unknown falls back", Page(99), false, Dashboard, true},
		{"negative falls back", Page(-1), true, Dashboard, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := New().Navigate(tc.page, tc.narrow)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantSidebar, got.SidebarOpen)
		})
	}
}

func TestToggleSidebar(t *testing.T) {
	s := New()
	s = s.ToggleSidebar()
	assert.False(t, s.SidebarOpen)
	s = s.ToggleSidebar()
	assert.True(t, s.SidebarOpen)
}

func TestNavigate_DoesNotReopenSidebar(t *testing.T) {
	s := New().ToggleSidebar().Navigate(PCInfo, false)
	assert.False(t, s.SidebarOpen)
}

func TestPages(t *testing.T) {
	assert.Len(t, Pages, 8)
	seen := map[string]bool{}
	for _, p := range Pages {
		assert.True(t, p.Valid())
		assert.NotEmpty(t, p.String())
		assert.False(t, seen[p.Slug()], "duplicate slug %q", p.Slug())
		seen[p.Slug()] = true

		got, ok := ParsePage(p.Slug())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestParsePage_Unknown(t *testing.T) {
	p, ok := ParsePage("printers")
	assert.False(t, ok)
	assert.Equal(t, Dashboard, p)
}

func TestIsCollection(t *testing.T) {
	assert.False(t, Dashboard.IsCollection())
	assert.False(t, DepartmentSummary.IsCollection())
	for _, p := range []Page{PCInfo, LaptopInfo, ServerInfo, MouseLog, KeyboardLog, SSDLog} {
		assert.True(t, p.IsCollection(), p.String())
	}
}

func TestString_Unknown(t *testing.T) {
	assert.Equal(t, "Dashboard", Page(42).String())
	assert.Equal(t, "dashboard", Page(42).Slug())
}
