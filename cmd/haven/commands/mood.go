// ABOUTME: Mood command: extract an emotional snapshot from diary text
// ABOUTME: Reads from args, stdin, or a stored entry via --date

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenjournal/haven/internal/extract"
	"github.com/havenjournal/haven/internal/storage"
)

var moodDate string

// NewMoodCmd creates the mood command
func NewMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood [text]",
		Short: "Read the mood of a diary entry",
		Long: `Extract mood and stress/loneliness/homesickness levels from diary text.

With --date, the stored entry for that date is analyzed and the mood is
recorded on it.

Examples:
  haven mood "Everyone went out and I stayed in again."
  haven mood --date 2026-08-29`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMood,
	}
	cmd.Flags().StringVar(&moodDate, "date", "", "Analyze the stored entry for this date (YYYY-MM-DD)")
	return cmd
}

func runMood(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}
	extractor := extract.NewExtractor(client)

	var text string
	var diary *storage.DiaryStore
	if moodDate != "" {
		if _, err := time.Parse(storage.DateFormat, moodDate); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", moodDate)
		}
		kv, closeKV, err := openKV(cfg, false)
		if err != nil {
			return err
		}
		defer closeKV()

		diary = storage.NewDiaryStore(kv)
		entry, err := diary.Get(moodDate)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no entry for %s", moodDate)
			}
			return err
		}
		text = entry.Content
	} else {
		text, err = readText(args)
		if err != nil {
			return err
		}
	}

	reading := extractor.Mood(cmd.Context(), text)

	if diary != nil && reading.Mood != "" {
		if err := diary.SetMood(moodDate, reading.Mood); err != nil && verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: recording mood failed: %v\n", err)
		}
	}

	mood := reading.Mood
	if mood == "" {
		mood = "unclear"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Mood:         %s\n", mood)
	fmt.Fprintf(cmd.OutOrStdout(), "Stress:       %d/10\n", reading.StressLevel)
	fmt.Fprintf(cmd.OutOrStdout(), "Loneliness:   %d/10\n", reading.LonelinessLevel)
	fmt.Fprintf(cmd.OutOrStdout(), "Homesickness: %d/10\n", reading.HomesicknessLevel)
	return nil
}
