package cli

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	primary   = lipgloss.Color("#f89820")
	secondary = lipgloss.Color("#5382a1")
	success   = lipgloss.Color("#00d26a")
	faint     = lipgloss.Color("#8e8e93")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(primary).Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(secondary).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)

	colorEnabled = true
)

func setColor(enabled bool) {
	colorEnabled = enabled
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}
