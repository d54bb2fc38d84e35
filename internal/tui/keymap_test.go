package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
		name    string
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit, "Quit"},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit, "Quit"},
		{tea.KeyMsg{Type: tea.KeyTab}, km.NextPane, "NextPane"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, km.PrevPane, "PrevPane"},
		{tea.KeyMsg{Type: tea.KeyEnter}, km.Apply, "Apply"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, km.Compare, "Compare"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, km.Reset, "Reset"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, km.Up, "Up"},
		{tea.KeyMsg{Type: tea.KeyDown}, km.Down, "Down"},
		{tea.KeyMsg{Type: tea.KeyPgUp}, km.PageUp, "PageUp"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown, "PageDown"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, km.Help, "Help"},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q should trigger %s", tt.msg.String(), tt.name)
		}
	}

	if key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Quit, km.Compare, km.Reset) {
		t.Error("unbound keys must not match")
	}
}

func TestKeyMap_HelpCoversEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	total := 0
	for _, group := range km.FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v lacks help text", b.Keys())
			}
			total++
		}
	}
	if total != 11 {
		t.Errorf("FullHelp lists %d bindings, want 11", total)
	}
	if len(km.ShortHelp()) >= total {
		t.Error("ShortHelp should be a subset of FullHelp")
	}
}
