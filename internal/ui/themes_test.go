package ui

import (
	"os"
	"testing"
)

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	for _, name := range []string{"dark", "light", "orange", "none"} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != name {
			t.Errorf("SetTheme(%q) activated %q", name, got)
		}
	}
	SetTheme("unknown")
	if got := GetCurrentTheme().Name; got != "dark" {
		t.Errorf("unknown theme activated %q, want dark", got)
	}
}

func TestInitTheme_NoColor(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty with --no-color")
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("TUI theme should follow the no-color theme")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestColorAccessors(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || ColorUnderline() != DarkTheme.Underline {
		t.Error("color accessors do not follow the active theme")
	}
}

func TestIsTerminal_File(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f.Fd()) {
		t.Error("a regular file is not a terminal")
	}
}

func TestThemeNamesAndLookup(t *testing.T) {
	names := ThemeNames()
	if len(names) != 4 || names[0] != "dark" {
		t.Fatalf("ThemeNames() = %v", names)
	}
	for _, name := range names {
		th, ok := LookupTheme(name)
		if !ok || th.Name != name {
			t.Errorf("LookupTheme(%q) = %q, %v", name, th.Name, ok)
		}
		if th.TUI.Text == nil {
			t.Errorf("theme %q has no TUI palette", name)
		}
	}
	if _, ok := LookupTheme("solarized"); ok {
		t.Error("unknown theme should not be found")
	}
}

func TestGetCurrentTUITheme_FollowsTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetTheme("light")
	if GetCurrentTUITheme() != LightTheme.TUI {
		t.Error("light theme should select the light dashboard palette")
	}
	SetTheme("orange")
	if GetCurrentTUITheme().Border != OrangeTheme.TUI.Border {
		t.Error("orange theme should select the orange dashboard palette")
	}
}
