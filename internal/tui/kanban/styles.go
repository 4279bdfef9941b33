package kanban

import (
	"burnboard/internal/kanban/models"
	"burnboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Title styles
	titleStyle = theme.Title.Padding(0, 1)

	// Column styles
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(columnWidth)

	selectedColumnStyle = columnStyle.
				BorderForeground(theme.BorderFocused)

	activeColumnStyle = columnStyle.
				BorderForeground(theme.Indicator)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Padding(0, 1).
			Width(cardInnerWidth)

	selectedCardStyle = cardStyle.
				BorderForeground(theme.BorderFocused).
				Foreground(theme.TextBright).
				Bold(true)

	moveSelectedCardStyle = cardStyle.
				BorderForeground(theme.Warning).
				Foreground(theme.Warning).
				Bold(true)

	draggedCardStyle = cardStyle.
				BorderForeground(theme.TextMuted).
				Foreground(theme.TextMuted).
				Faint(true)

	// Drop indicator
	indicatorStyle = lipgloss.NewStyle().Foreground(theme.Indicator)

	countStyle        = theme.Muted
	addCardStyle      = theme.Muted
	addCardInputStyle = lipgloss.NewStyle().Foreground(theme.Indicator)

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Italic(true)

	// Burn barrel
	barrelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Neutral).
			Foreground(theme.Neutral).
			Width(barrelWidth).
			Height(barrelHeight).
			Align(lipgloss.Center, lipgloss.Center)

	activeBarrelStyle = barrelStyle.
				BorderForeground(theme.Fire).
				Foreground(theme.Fire).
				Bold(true)

	// Help styles
	helpStyle = theme.Muted.Padding(0, 1)

	// Message styles
	errorStyle   = theme.Error.Padding(0, 1)
	warningStyle = theme.Warn.Padding(0, 1)
	successStyle = theme.Ok.Padding(0, 1)

	filterIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Warning).
				Bold(true)
)

// headingStyle returns the heading colour for a column
func headingStyle(column models.Column) lipgloss.Style {
	color := theme.Neutral
	switch column {
	case models.Todo:
		color = theme.Warning
	case models.Doing:
		color = theme.Primary
	case models.Done:
		color = theme.Emerald
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
