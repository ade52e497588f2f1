// Package cli renders snippet runs in the terminal: the progress spinner,
// per-snippet headers, the summary table, the execution banner and the
// run transcript.
package cli
