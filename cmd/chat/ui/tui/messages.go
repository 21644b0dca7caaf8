package tui

import "github.com/DrizzleTime/foxelbot/chat"

// Tea messages for event handling

type (
	// SnapshotMsg carries a fresh conversation snapshot from the store
	SnapshotMsg chat.Snapshot

	// TurnDoneMsg signals that the in-flight turn finished
	TurnDoneMsg struct {
		Err error
	}
)
