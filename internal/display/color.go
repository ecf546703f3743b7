// Package display renders terminal output with lipgloss styles.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// enabled reports whether color output is active.
// It is set once at init time.
var enabled bool

// renderer always emits ANSI; enabled decides whether it is used at all.
var renderer = lipgloss.NewRenderer(os.Stdout)

var (
	boldStyle   = renderer.NewStyle().Bold(true)
	dimStyle    = renderer.NewStyle().Faint(true)
	greenStyle  = renderer.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = renderer.NewStyle().Foreground(lipgloss.Color("3"))
	cyanStyle   = renderer.NewStyle().Foreground(lipgloss.Color("6"))
	grayStyle   = renderer.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

func init() {
	renderer.SetColorProfile(termenv.ANSI)
	enabled = shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	// Respect NO_COLOR (https://no-color.org/).
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	// Respect FORCE_COLOR for testing.
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	// Disable color when stdout is not a terminal (piped/redirected).
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return render(boldStyle, text)
}

// Dim returns text rendered in dim/faint.
func Dim(text string) string {
	return render(dimStyle, text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return render(greenStyle, text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return render(yellowStyle, text)
}

// Cyan returns text rendered in cyan.
func Cyan(text string) string {
	return render(cyanStyle, text)
}

// Gray returns text rendered in gray (bright black).
func Gray(text string) string {
	return render(grayStyle, text)
}

// Accent returns text rendered in the accent color (cyan + bold).
// Used for the current segment highlight.
func Accent(text string) string {
	return render(accentStyle, text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}

// ProgressBar draws pct (0-100) as a bar of width cells.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))
	return Green(strings.Repeat("█", filled)) + Gray(strings.Repeat("░", width-filled))
}
