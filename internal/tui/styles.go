package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rnafold/internal/ui"
)

// Dashboard styles, rebuilt from the ui palette by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	successStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	bracketStyle       lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from the current palette. Run calls it
// again after the theme has been chosen.
func initTUIStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(p.Accent)
	successStyle = lipgloss.NewStyle().Foreground(p.Success)
	errorStyle = lipgloss.NewStyle().Foreground(p.Error)
	bracketStyle = lipgloss.NewStyle().Foreground(p.Pair).Bold(true)

	metricLabelStyle = lipgloss.NewStyle().Foreground(p.Dim)
	metricValueStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	footerKeyStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(p.Dim)

	statusRunningStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().Foreground(p.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(p.Warning)
}
