package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the terminal output.
var (
	colorPrimary = lipgloss.Color("#2ECC71")
	colorMuted   = lipgloss.Color("#666666")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 1)

	okStyle   = lipgloss.NewStyle().Foreground(colorPrimary)
	warnStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errStyle  = lipgloss.NewStyle().Foreground(colorError)
)

// Title renders a section heading.
func Title(text string) string {
	return titleStyle.Render(">>> " + text)
}

// Subtitle renders secondary text under a heading.
func Subtitle(text string) string {
	return subtitleStyle.Render(text)
}

// Warn renders a warning line.
func Warn(text string) string {
	return warnStyle.Render(">>> " + text)
}

// Error renders an error line.
func Error(text string) string {
	return errStyle.Render(">>> " + text)
}
