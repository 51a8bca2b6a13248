package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cwfields/grit/internal/config"
)

// Styles holds all the lipgloss styles
type Styles struct {
	title    lipgloss.Style
	pane     lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	message  lipgloss.Style
	errText  lipgloss.Style
	help     lipgloss.Style
	prompt   lipgloss.Style
	footer   lipgloss.Style
}

// createStyles initializes all lipgloss styles based on theme
func createStyles(theme config.Theme) *Styles {
	return &Styles{
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.BorderFg).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			Foreground(theme.SelectedFg).
			Bold(true),
		item: lipgloss.NewStyle().
			Foreground(theme.ItemFg),
		message: lipgloss.NewStyle().
			Foreground(theme.MessageFg),
		errText: lipgloss.NewStyle().
			Foreground(theme.ErrorFg),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg),
		prompt: lipgloss.NewStyle().
			Foreground(theme.PromptFg).
			Bold(true),
		footer: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
	}
}
