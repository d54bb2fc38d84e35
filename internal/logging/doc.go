// Package logging provides a unified logging interface for puzzlebook.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components (server, orchestration, REPL) while supporting multiple backends.
package logging
