package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Bright green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Bright red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))  // Blue
)

var out io.Writer = os.Stdout

// SetOutput redirects all Print functions to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// SetNoColor disables ANSI styling for every render function when disabled is true.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (blue) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Print functions output styled text with a newline.

// Println prints text without styling.
func Println(text string) {
	fmt.Fprintln(out, text)
}

// PrintFaint prints text with faint styling.
func PrintFaint(text string) {
	fmt.Fprintln(out, Faint(text))
}

// PrintBold prints text with bold styling.
func PrintBold(text string) {
	fmt.Fprintln(out, Bold(text))
}

// PrintSuccess prints text with success (green) styling.
func PrintSuccess(text string) {
	fmt.Fprintln(out, Success(text))
}

// PrintError prints text with error (red) styling.
func PrintError(text string) {
	fmt.Fprintln(out, Error(text))
}

// PrintWarning prints text with warning (yellow) styling.
func PrintWarning(text string) {
	fmt.Fprintln(out, Warning(text))
}

// PrintInfo prints text with info (blue) styling.
func PrintInfo(text string) {
	fmt.Fprintln(out, Info(text))
}
