package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors, adaptive for light and dark terminals.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	colorError   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// Shared styles for command output.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold    = lipgloss.NewStyle().Bold(true)
)

// CheckNoColor disables color output when NO_COLOR is set or TERM=dumb.
// Call at the start of commands that render styled output.
func CheckNoColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// statusBadge renders a task status with icon, color, and text so the
// state is readable without color support.
func statusBadge(status string) string {
	switch status {
	case "done":
		return styleSuccess.Render("✓ done")
	case "in-progress":
		return styleWarning.Render("~ in-progress")
	default:
		return styleMuted.Render("· todo")
	}
}

// priorityBadge renders a priority marker; empty input reads as medium.
func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return styleError.Render("high")
	case "low":
		return styleMuted.Render("low")
	default:
		return styleWarning.Render("med")
	}
}
