package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/chat/model"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/styles"
	"github.com/DrizzleTime/foxelbot/pkg/xmap"
)

// ChatComponent renders the conversation log from store snapshots
type ChatComponent struct {
	viewport viewport.Model
	snapshot chat.Snapshot
	theme    *styles.Theme
	markdown *glamour.TermRenderer
	width    int
	height   int
}

// NewChatComponent creates a new chat component
func NewChatComponent(theme *styles.Theme) *ChatComponent {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.KeyMap = viewport.DefaultKeyMap()

	c := &ChatComponent{
		viewport: vp,
		theme:    theme,
		width:    80,
		height:   20,
	}
	c.rebuildRenderer()

	return c
}

// Update handles component updates
func (c *ChatComponent) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// View renders the component
func (c *ChatComponent) View() string {
	return c.viewport.View()
}

// SetSnapshot replaces the rendered conversation state
func (c *ChatComponent) SetSnapshot(snap chat.Snapshot) {
	c.snapshot = snap
	c.refresh()
}

// SetSize updates the component size
func (c *ChatComponent) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.viewport.Width = width
	c.viewport.Height = height
	c.rebuildRenderer()
	c.refresh()
}

func (c *ChatComponent) rebuildRenderer() {
	wrap := c.width - 4
	if wrap < 20 {
		wrap = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		c.markdown = renderer
	}
}

// refresh updates the viewport content
func (c *ChatComponent) refresh() {
	content := c.renderMessages()
	c.viewport.SetContent(lipgloss.NewStyle().Width(c.viewport.Width).Render(content))
	c.viewport.GotoBottom()
}

// renderMessages renders the message log plus the currently running tools
func (c *ChatComponent) renderMessages() string {
	var sb strings.Builder

	for _, msg := range c.snapshot.Messages {
		switch {
		case msg.Role.User():
			sb.WriteString(c.renderUserMessage(msg))
		case msg.Role.Assistant():
			sb.WriteString(c.renderAssistantMessage(msg))
		case msg.Role.Tool():
			sb.WriteString(c.renderToolMessage(msg))
		}
	}

	for _, line := range c.runningToolLines() {
		sb.WriteString(c.theme.Running.Render(line))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (c *ChatComponent) renderUserMessage(msg model.Message) string {
	header := c.theme.User.HeaderStyle.Render("You:")
	body := c.theme.User.BodyStyle.Render(msg.Content.Plain())

	boxWidth := c.viewport.Width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}

	box := c.theme.User.BoxStyle.Width(boxWidth).Render(header + "\n" + body)
	return box + "\n"
}

func (c *ChatComponent) renderAssistantMessage(msg model.Message) string {
	text := msg.Content.Plain()
	if text == "" && !msg.HasToolCalls() {
		return ""
	}

	header := c.theme.Assistant.HeaderStyle.Render("Assistant:")

	body := text
	if c.markdown != nil {
		if rendered, err := c.markdown.Render(text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}

	var calls strings.Builder
	for _, tc := range msg.ToolCalls {
		line := "→ " + tc.Function.Name
		if args, err := tc.Function.ParseArguments(); err == nil && len(args) > 0 {
			line += " " + formatArguments(args)
		}
		calls.WriteString("\n")
		calls.WriteString(c.theme.Tool.HeaderStyle.Render(line))
	}

	return c.theme.Assistant.BoxStyle.Render(header+"\n"+body+calls.String()) + "\n"
}

func (c *ChatComponent) renderToolMessage(msg model.Message) string {
	header := c.theme.Tool.HeaderStyle.Render("Tool result:")
	body := c.theme.Tool.BodyStyle.Render(truncate(msg.Content.Plain(), 500))
	return c.theme.Tool.BoxStyle.Render(header+"\n"+body) + "\n"
}

func (c *ChatComponent) runningToolLines() []string {
	if len(c.snapshot.RunningTools) == 0 {
		return nil
	}

	ids := xmap.SortedKeys(c.snapshot.RunningTools)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		name := c.snapshot.RunningTools[id]
		if name == "" {
			name = id
		}
		lines = append(lines, "⚙ "+name+" running...")
	}
	return lines
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	// back up to a rune boundary so the cut never mangles a multi-byte rune
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
