package tui

import (
	"strings"
)

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.chatPane.View())
	b.WriteString("\n")

	if m.pending.Visible() {
		b.WriteString(m.pending.View())
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.theme.Error.Render("error: " + m.err.Error())
	}
	if m.busy {
		return m.spinner.View() + m.theme.Status.Render(" working...")
	}
	if m.pending.Visible() {
		return m.theme.Status.Render("waiting for your decision")
	}
	return m.theme.Status.Render("enter to send · /clear to reset · ctrl+c to quit")
}
