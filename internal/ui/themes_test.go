package ui

import "testing"

// Theme state is global, so these tests do not run in parallel.

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitThemeNoColor(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty with --no-color")
	}
	if CurrentPalette() != NoColorPalette {
		t.Error("palette should follow the no-color theme")
	}
}

func TestInitThemeEnv(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestColorsFollowTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorBold() != DarkTheme.Bold {
		t.Error("color accessors do not read the active theme")
	}
	if CurrentPalette() != DarkPalette {
		t.Error("dark theme should use the dark palette")
	}
}
