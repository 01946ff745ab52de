// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: haven is a journaling companion for people far from their support system

package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haven",
		Short: "A journaling companion that meets you where you are",
		Long: `haven - journal, chat, and stay connected

A private journaling companion for people far from home. Chat turns are
routed to the support style that fits what you wrote: gentle reflection,
validation when things are heavy, or help navigating a conflict. Diary
entries, moods, people, and reminders sync across devices through your
charm account.

Environment:
  OPENAI_API_KEY   required for chat, mood, and summary features
  CHARM_HOST       charm server for synced storage (default cloud.charm.sh)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewDiaryCmd())
	cmd.AddCommand(NewPromptsCmd())
	cmd.AddCommand(NewMoodCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
