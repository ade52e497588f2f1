// Package tui implements the interactive snippet browser started with --tui.
// It is a bubbletea program: the list of snippets on top, the output of the
// selected snippet below, and a key help footer.
package tui
