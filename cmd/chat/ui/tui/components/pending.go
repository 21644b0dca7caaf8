package components

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DrizzleTime/foxelbot/chat/model"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/styles"
)

// PendingPanel shows the tool calls waiting for a user decision
type PendingPanel struct {
	theme   *styles.Theme
	pending []model.PendingToolCall
	width   int
}

// NewPendingPanel creates a new approval panel
func NewPendingPanel(theme *styles.Theme) *PendingPanel {
	return &PendingPanel{
		theme: theme,
		width: 80,
	}
}

// SetPending replaces the displayed pending tool calls
func (p *PendingPanel) SetPending(pending []model.PendingToolCall) {
	p.pending = pending
}

// SetWidth sets the panel width
func (p *PendingPanel) SetWidth(width int) {
	p.width = width
}

// Visible reports whether there is anything to decide
func (p *PendingPanel) Visible() bool {
	return len(p.pending) > 0
}

// First returns the id the single-call keys act on
func (p *PendingPanel) First() string {
	if len(p.pending) == 0 {
		return ""
	}
	return p.pending[0].Id
}

// View renders the panel
func (p *PendingPanel) View() string {
	if !p.Visible() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(p.theme.Pending.NameStyle.Render("⚠ Tool calls awaiting your decision"))
	sb.WriteString("\n")

	for i, call := range p.pending {
		marker := "  "
		if i == 0 {
			marker = "▸ "
		}
		sb.WriteString(marker + p.theme.Pending.NameStyle.Render(call.Name))
		if args := formatArguments(call.Arguments); args != "" {
			sb.WriteString(" ")
			sb.WriteString(p.theme.Pending.ArgsStyle.Render(args))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(p.theme.Pending.KeysStyle.Render("[y] approve  [n] reject  [Y] approve all  [N] reject all"))

	boxWidth := p.width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return p.theme.Pending.BoxStyle.Width(boxWidth).Render(sb.String())
}

func formatArguments(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	if len(raw) > 120 {
		return string(raw[:120]) + "..."
	}
	return string(raw)
}
