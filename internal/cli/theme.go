package cli

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title lipgloss.Style
	Faint lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Warn  lipgloss.Style
}

func theme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true),
		Faint: lipgloss.NewStyle().Faint(true),
		Pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
