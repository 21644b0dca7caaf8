package styles

import "github.com/charmbracelet/lipgloss"

// MessageTheme defines styling for a message type
type MessageTheme struct {
	HeaderStyle lipgloss.Style
	BodyStyle   lipgloss.Style
	BoxStyle    lipgloss.Style
}

// PendingTheme defines styling for the tool call approval panel
type PendingTheme struct {
	BoxStyle  lipgloss.Style
	NameStyle lipgloss.Style
	ArgsStyle lipgloss.Style
	KeysStyle lipgloss.Style
}

// Theme contains all UI styling
type Theme struct {
	User      MessageTheme
	Assistant MessageTheme
	Tool      MessageTheme
	Pending   PendingTheme
	Running   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultTheme returns the default theme
func DefaultTheme() *Theme {
	return &Theme{
		User: MessageTheme{
			HeaderStyle: lipgloss.NewStyle().
				Foreground(ColorUserPrimary).
				Bold(true),
			BodyStyle: lipgloss.NewStyle().
				Foreground(ColorUserPrimary),
			BoxStyle: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorUserPrimary).
				Padding(0, 1).
				MarginBottom(1),
		},
		Assistant: MessageTheme{
			HeaderStyle: lipgloss.NewStyle().
				Foreground(ColorAssistantPrimary).
				Bold(true),
			BodyStyle: lipgloss.NewStyle().
				Foreground(ColorAssistantPrimary),
			BoxStyle: lipgloss.NewStyle().
				MarginBottom(1),
		},
		Tool: MessageTheme{
			HeaderStyle: lipgloss.NewStyle().
				Foreground(ColorToolRunning).
				Italic(true),
			BodyStyle: lipgloss.NewStyle().
				Foreground(ColorToolResult),
			BoxStyle: lipgloss.NewStyle().
				MarginBottom(1),
		},
		Pending: PendingTheme{
			BoxStyle: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPendingDanger).
				Padding(0, 1),
			NameStyle: lipgloss.NewStyle().
				Foreground(ColorPendingDanger).
				Bold(true),
			ArgsStyle: lipgloss.NewStyle().
				Foreground(ColorToolResult),
			KeysStyle: lipgloss.NewStyle().
				Foreground(ColorStatus),
		},
		Running: lipgloss.NewStyle().
			Foreground(ColorToolRunning).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(ColorStatus),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
	}
}
