package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	minTerminalWidth = 60
	maxContentWidth  = 100
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#F2C94C") // Amber, fitting for a light tool
	secondaryColor = lipgloss.Color("#43BF6D") // Green
	warningColor   = lipgloss.Color("#FFA500") // Orange
	errorColor     = lipgloss.Color("#FF5555") // Red
	subtleColor    = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 0)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(1, 0, 0, 2)
)
