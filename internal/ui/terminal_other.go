//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package ui

// IsTerminal reports false on platforms without termios; callers fall back
// to plain output.
func IsTerminal(uintptr) bool { return false }
