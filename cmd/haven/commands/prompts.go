// ABOUTME: Prompts commands: list packs and pick a journal prompt
// ABOUTME: Pick-of-day is stable for a given date; --random draws fresh

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenjournal/haven/internal/prompts"
)

var promptRandom bool

// NewPromptsCmd creates the prompts command group
func NewPromptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Journal prompts to get you writing",
	}

	list := &cobra.Command{
		Use:   "list [category]",
		Short: "List prompt categories, or the prompts in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, category := range prompts.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), category)
				}
				return nil
			}
			pack, ok := prompts.ForCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}
			for _, prompt := range pack {
				fmt.Fprintln(cmd.OutOrStdout(), prompt)
			}
			return nil
		},
	}

	pick := &cobra.Command{
		Use:   "pick [category]",
		Short: "Show the prompt of the day",
		Long: `Show the prompt of the day for a category (default: daily). The same
date always yields the same prompt; use --random for a fresh draw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "daily"
			if len(args) > 0 {
				category = args[0]
			}

			var prompt string
			if promptRandom {
				prompt = prompts.Random(category)
			} else {
				prompt = prompts.OfDay(category, time.Now())
			}
			if prompt == "" {
				return fmt.Errorf("unknown category %q", category)
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	pick.Flags().BoolVar(&promptRandom, "random", false, "Pick a random prompt instead of the day's")

	cmd.AddCommand(list, pick)
	return cmd
}
