// Package ui provides the color themes shared by the CLI presenter and the
// interactive snippet browser. Styles are rendered with lipgloss, so output
// degrades to plain text when the terminal has no color support.
package ui
