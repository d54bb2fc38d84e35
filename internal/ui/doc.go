// Package ui holds the color themes shared by the CLI, the REPL and the TUI
// dashboard, plus terminal detection.
package ui
