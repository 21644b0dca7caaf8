package chat

import (
	"context"
	"fmt"

	"github.com/DrizzleTime/foxelbot/chat/attach"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui"

	"github.com/spf13/cobra"
)

var (
	serverOverride  string
	pathOverride    string
	autoExecute     bool
	attachPatterns  []string
	oneTimeQuestion string
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the Foxel assistant.",
	Long:  "Chat with the Foxel assistant.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if oneTimeQuestion != "" {
			return runChatOnce(cmd.Context(), oneTimeQuestion)
		}

		if len(attachPatterns) > 0 {
			return fmt.Errorf("--attach requires --message, attachments are inlined into a one-shot question")
		}

		return runChat(cmd.Context())
	},
}

func init() {
	ChatCmd.Flags().StringVar(&serverOverride, "server", "", "Override the configured server base url.")
	ChatCmd.Flags().StringVar(&pathOverride, "path", "", "Virtual path to use as the conversation's directory context.")
	ChatCmd.Flags().BoolVar(&autoExecute, "auto", false, "Execute proposed tool calls without asking.")
	ChatCmd.Flags().StringArrayVar(&attachPatterns, "attach", nil, "Glob pattern of local text files to inline into a one-shot --message question. Repeatable.")
	ChatCmd.Flags().StringVar(&oneTimeQuestion, "message", "", "To ask a one-time question, provide the message.")
}

func runChat(ctx context.Context) error {
	conv, err := prepareConversation()
	if err != nil {
		return err
	}

	return tui.Run(ctx, conv)
}

func runChatOnce(ctx context.Context, message string) error {
	// nobody is around to confirm tool calls in one-shot mode
	autoExecute = true

	conv, err := prepareConversation()
	if err != nil {
		return err
	}

	if len(attachPatterns) > 0 {
		attachments, err := attach.Collect(attachPatterns)
		if err != nil {
			return err
		}
		message = attach.Render(message, attachments)
	}

	return runOnce(ctx, conv, message)
}
