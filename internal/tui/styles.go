package tui

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

type styles struct {
	title, sidebar, sidebarItem, sidebarActive, sidebarCursor lipgloss.Style
	content, help, status, error, empty, label, focused       lipgloss.Style
	barUsed, barStock, dialog                                 lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true).
			MarginBottom(1),
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaComment)).
			Padding(0, 1).
			Width(24),
		sidebarItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		sidebarActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true),
		sidebarCursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)),
		content: lipgloss.NewStyle().
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Width(18),
		focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true).
			Width(18),
		barUsed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)),
		barStock: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaRed)).
			Padding(0, 2),
	}
}
