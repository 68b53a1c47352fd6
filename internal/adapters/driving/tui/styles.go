package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by the browser views.
type Styles struct {
	Title  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Face   lipgloss.Style
	Rule   lipgloss.Style
}

// DefaultStyles returns the default colour scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1),
		Face:   lipgloss.NewStyle().Padding(0, 2),
		Rule:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
