package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/styles"
)

// Run starts the TUI application
func Run(ctx context.Context, conv *chat.Conversation) error {
	model := New(ctx, conv, styles.DefaultTheme())

	program := tea.NewProgram(&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	model.SetProgram(program)

	// stream store updates into the event loop
	conv.Store().Subscribe(func(snap chat.Snapshot) {
		program.Send(SnapshotMsg(snap))
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
