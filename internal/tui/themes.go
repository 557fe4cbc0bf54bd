package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "pkgrel"

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"pkgrel",
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name.
// Returns nil if the theme name is not recognized.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "pkgrel":
		return pkgrelTheme()
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// Palette for the default theme.
var (
	pkgrelAccent = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	pkgrelText   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	pkgrelMuted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	pkgrelError  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	pkgrelBorder = lipgloss.AdaptiveColor{Light: "#93C5FD", Dark: "#1E3A8A"}
)

// pkgrelTheme is the default prompt theme: huh's base theme with a blue accent.
func pkgrelTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(pkgrelBorder)
	t.Focused.Title = t.Focused.Title.Foreground(pkgrelAccent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(pkgrelMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(pkgrelAccent)
	t.Focused.Option = t.Focused.Option.Foreground(pkgrelText)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(pkgrelError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(pkgrelError)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(pkgrelAccent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(pkgrelMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(pkgrelAccent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
