package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/pkg/safe"
)

// Update handles all model updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		newModel, cmd, handled := m.handleKeyPress(msg)
		if handled {
			return newModel, cmd
		}
		return newModel, newModel.input.Update(msg)

	case tea.MouseMsg:
		return m, m.chatPane.Update(msg)

	case SnapshotMsg:
		return m.handleSnapshot(msg), nil

	case TurnDoneMsg:
		m.busy = false
		m.err = msg.Err
		m.refreshFocus()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.input.Update(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	chatHeight := msg.Height - inputHeight - 2
	if chatHeight < 5 {
		chatHeight = 5
	}

	m.chatPane.SetSize(msg.Width, chatHeight)
	m.input.SetWidth(msg.Width)
	m.pending.SetWidth(msg.Width)

	return m
}

func (m Model) handleSnapshot(msg SnapshotMsg) Model {
	snap := chat.Snapshot(msg)
	m.chatPane.SetSnapshot(snap)
	m.pending.SetPending(snap.Pending)
	m.refreshFocus()
	return m
}

// refreshFocus keeps the input inactive while a decision is pending or a
// turn is running, so decision keys are not swallowed by the textarea.
func (m *Model) refreshFocus() {
	if m.pending.Visible() || m.busy {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit, true
	}

	// decision keys take over while pending calls are visible
	if m.pending.Visible() && !m.busy {
		return m.handleDecisionKey(msg)
	}

	if msg.Type == tea.KeyEnter && !m.busy {
		newModel, cmd := m.handleSubmit()
		return newModel, cmd, true
	}

	return m, nil, false
}

func (m Model) handleDecisionKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	conv := m.conv
	first := m.pending.First()

	var newModel Model
	var cmd tea.Cmd

	switch msg.String() {
	case "y":
		newModel, cmd = m.startTurn(func(ctx context.Context) error {
			return conv.Approve(ctx, first)
		})
	case "n":
		newModel, cmd = m.startTurn(func(ctx context.Context) error {
			return conv.Reject(ctx, first)
		})
	case "Y":
		newModel, cmd = m.startTurn(conv.ApproveAll)
	case "N":
		newModel, cmd = m.startTurn(conv.RejectAll)
	default:
		// undecided keys stay away from the blurred input
		return m, nil, true
	}

	return newModel, cmd, true
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := m.input.Value()
	if text == "" {
		return m, nil
	}

	m.input.Reset()

	if text == "/clear" {
		m.conv.Clear()
		m.err = nil
		return m, nil
	}

	conv := m.conv
	newModel, cmd := m.startTurn(func(ctx context.Context) error {
		return conv.SendUserTurn(ctx, text)
	})
	return newModel, tea.Batch(cmd, newModel.input.Init())
}

// startTurn runs one protocol turn in the background; the store subscription
// streams snapshots back into the UI while it progresses.
func (m Model) startTurn(run func(context.Context) error) (Model, tea.Cmd) {
	m.busy = true
	m.err = nil
	m.refreshFocus()

	ctx := m.ctx
	program := m.program
	safe.GoCtx(ctx, func() {
		err := run(ctx)
		program.Send(TurnDoneMsg{Err: err})
	})

	return m, m.spinner.Tick
}
