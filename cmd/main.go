package main

import (
	"github.com/DrizzleTime/foxelbot/cmd/chat"
	"github.com/DrizzleTime/foxelbot/cmd/onboard"
	"github.com/DrizzleTime/foxelbot/pkg/process"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foxelbot",
	Short: "Talk to a Foxel console's assistant from the terminal.",
}

func init() {
	rootCmd.AddCommand(chat.ChatCmd)
	rootCmd.AddCommand(onboard.OnboardCmd)
}

func main() {
	ctx, cancel, wait := process.GetRootContext()
	rootCmd.ExecuteContext(ctx)
	cancel()

	wait()
}
