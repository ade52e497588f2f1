package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/snippets/internal/format"
)

// HeaderModel renders the top bar: title, version and the time spent in the
// last run.
type HeaderModel struct {
	version  string
	lastRun  time.Duration
	runCount int
	width    int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// RecordRun notes a finished run.
func (h *HeaderModel) RecordRun(d time.Duration) {
	h.lastRun = d
	h.runCount++
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Snippets"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	row := titleStyle.Render(titleText)
	if h.runCount > 0 {
		row += versionStyle.Render(" | ") +
			elapsedStyle.Render(fmt.Sprintf("Runs: %d, last: %s", h.runCount, format.FormatExecutionDuration(h.lastRun)))
	}
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
