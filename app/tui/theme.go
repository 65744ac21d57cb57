package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorFG     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	colorFGDim  = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#333333"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#2A2A2A", Dark: "#E5E5E5"}
	colorOK     = lipgloss.Color("#00AA00")
	colorError  = lipgloss.Color("#CC0000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFG)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	columnNameStyle = lipgloss.NewStyle().
			Foreground(colorFGDim).
			Italic(true)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFG)

	focusStyle = lipgloss.NewStyle().
			Reverse(true).
			Foreground(colorAccent)

	dynamicStyle = lipgloss.NewStyle().
			Foreground(colorFGDim)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorFGDim)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(colorOK)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
