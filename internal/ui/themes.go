package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme used for CLI and TUI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the accent color for headers and the selected TUI row.
	Primary lipgloss.TerminalColor
	// Secondary is used for less prominent elements (durations, help).
	Secondary lipgloss.TerminalColor
	// Success marks snippets that completed.
	Success lipgloss.TerminalColor
	// Warning marks timeouts and cancellations.
	Warning lipgloss.TerminalColor
	// Error marks failed snippets.
	Error lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("39"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("220"),
		Error:     lipgloss.Color("196"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("27"),
		Secondary: lipgloss.Color("240"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("124"),
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Header renders s bold in the primary color.
func (t Theme) Header(s string) string {
	return t.style(t.Primary).Bold(t.Name != NoColorTheme.Name).Render(s)
}

// Muted renders s in the secondary color.
func (t Theme) Muted(s string) string { return t.style(t.Secondary).Render(s) }

// OK renders s in the success color.
func (t Theme) OK(s string) string { return t.style(t.Success).Render(s) }

// Warn renders s in the warning color.
func (t Theme) Warn(s string) string { return t.style(t.Warning).Render(s) }

// Fail renders s in the error color.
func (t Theme) Fail(s string) string { return t.style(t.Error).Render(s) }

func (t Theme) style(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
