package output

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorWarning = lipgloss.Color("#FFB86C")

	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	UnplannedStyle   = TableCellStyle.Foreground(ColorDanger)
	WarningStyle     = lipgloss.NewStyle().Foreground(ColorWarning)
)
