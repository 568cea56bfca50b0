package main

import "github.com/charmbracelet/lipgloss"

// Styles degrade to plain text when stdout is not a terminal.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func validLine(path string) string {
	return "config: " + okStyle.Render("ok") + " " + pathStyle.Render(path)
}

func invalidLine(err error) string {
	return "config: " + failStyle.Render("invalid") + "\n" + err.Error()
}
