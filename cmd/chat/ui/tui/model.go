package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/components"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/styles"
)

const (
	inputHeight = 2
)

// Model is the main TUI model
type Model struct {
	ctx     context.Context
	conv    *chat.Conversation
	theme   *styles.Theme
	program *tea.Program

	chatPane *components.ChatComponent
	input    *components.InputComponent
	pending  *components.PendingPanel
	spinner  spinner.Model

	width  int
	height int
	busy   bool
	err    error
}

// New creates a new TUI model
func New(ctx context.Context, conv *chat.Conversation, theme *styles.Theme) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorSpinner)

	chatPane := components.NewChatComponent(theme)
	chatPane.SetSnapshot(conv.Store().Snapshot())

	return Model{
		ctx:      ctx,
		conv:     conv,
		theme:    theme,
		chatPane: chatPane,
		input:    components.NewInputComponent(inputHeight),
		pending:  components.NewPendingPanel(theme),
		spinner:  s,
		width:    80,
		height:   24,
	}
}

// SetProgram sets the tea program reference
func (m *Model) SetProgram(program *tea.Program) {
	m.program = program
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		m.spinner.Tick,
	)
}
