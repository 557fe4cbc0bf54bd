package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsValidTheme(t *testing.T) {
	tests := []struct {
		theme string
		want  bool
	}{
		{"pkgrel", true},
		{"base", true},
		{"base16", true},
		{"catppuccin", true},
		{"charm", true},
		{"dracula", true},
		{"neon", false},
		{"", false},
		{"DRACULA", false},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			if got := IsValidTheme(tt.theme); got != tt.want {
				t.Errorf("IsValidTheme(%q) = %v, want %v", tt.theme, got, tt.want)
			}
		})
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ValidThemes {
		if GetTheme(name) == nil {
			t.Errorf("GetTheme(%q) returned nil", name)
		}
	}
	if GetTheme("unknown") != nil {
		t.Error("GetTheme(unknown) should return nil")
	}
}

func TestPkgrelTheme(t *testing.T) {
	theme := pkgrelTheme()

	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("Blurred.Base should have hidden border")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(resetTheme)

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("SetTheme(dracula) left currentTheme nil")
	}

	SetTheme("nope")
	if currentTheme != nil {
		t.Error("SetTheme with invalid name should fall back to default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("currentThemeOrDefault() returned nil")
	}
}
