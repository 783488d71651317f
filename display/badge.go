// ABOUTME: Colored terminal badges built with lipgloss
// ABOUTME: Falls back to plain text when stdout is not a terminal
package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color decides whether badges carry ANSI styling.
var Color = term.IsTerminal(int(os.Stdout.Fd()))

var badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// Badge renders text on a background of the given hex color.
func Badge(text, hex string) string {
	if !Color {
		return "[" + text + "]"
	}
	return badgeStyle.
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(hex)).
		Render(text)
}

// Tint renders text in the given hex color without a background.
func Tint(text, hex string) string {
	if !Color {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}

// StatusBadge is a badge colored by StatusColor.
func StatusBadge(status, text string) string {
	return Badge(text, StatusColor(status))
}
