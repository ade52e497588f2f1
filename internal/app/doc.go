// Package app wires configuration, the snippet registry, orchestration and
// presentation into the snippets command.
package app
