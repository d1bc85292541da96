package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#00D9FF")
	Secondary = lipgloss.Color("#7C3AED")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Primary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Selector styles
	PromptStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	QueryStyle = lipgloss.NewStyle().
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	// Profile styles
	ProfileActiveStyle = lipgloss.NewStyle().
				Foreground(Success).
				Bold(true)

	ProfileSSO = lipgloss.NewStyle().
			Foreground(Primary)

	ProfileRole = lipgloss.NewStyle().
			Foreground(Secondary)
)
