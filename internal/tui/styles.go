package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/snippets/internal/ui"
)

// Style variables for the snippet browser.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	titleStyle   lipgloss.Style
	versionStyle lipgloss.Style
	elapsedStyle lipgloss.Style
	cursorStyle  lipgloss.Style
	itemStyle    lipgloss.Style
	descStyle    lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	runningStyle lipgloss.Style
	outputStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Secondary)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Primary)

	cursorStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	itemStyle = lipgloss.NewStyle()

	descStyle = lipgloss.NewStyle().
		Foreground(t.Secondary)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	runningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	outputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(t.Secondary)
}
