package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions
var (
	ColorUserPrimary      = lipgloss.Color("#937dd8")
	ColorAssistantPrimary = lipgloss.Color("#0f8b56")
	ColorToolRunning      = lipgloss.Color("#6b7b8c") // blue-gray
	ColorToolResult       = lipgloss.Color("#5e6e7e")
	ColorPendingDanger    = lipgloss.Color("#ff6b6b")
	ColorStatus           = lipgloss.Color("#808080")
	ColorSpinner          = lipgloss.Color("#2ECC71")
	ColorError            = lipgloss.Color("#e74c3c")
)
