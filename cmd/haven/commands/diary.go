// ABOUTME: Diary commands: add, show, list, and star entries
// ABOUTME: One entry per calendar day, stored in charm cloud KV

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenjournal/haven/internal/storage"
)

var (
	diaryDate  string
	diaryLimit int
)

// NewDiaryCmd creates the diary command group
func NewDiaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Manage diary entries",
		Long:  `Add, read, and organize daily diary entries.`,
	}

	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Write today's entry",
		Long: `Save a diary entry. Overwrites the existing entry for that date.

Examples:
  haven diary add "Called home, felt a lot lighter after."
  haven diary add --date 2026-08-28 "Backfilling yesterday."
  cat note.txt | haven diary add`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiaryAdd,
	}
	add.Flags().StringVar(&diaryDate, "date", "", "Entry date, YYYY-MM-DD (default: today)")

	show := &cobra.Command{
		Use:   "show [date]",
		Short: "Show an entry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiaryShow,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent entries",
		RunE:  runDiaryList,
	}
	list.Flags().IntVar(&diaryLimit, "limit", 10, "Maximum entries to list")

	star := &cobra.Command{
		Use:   "star [date]",
		Short: "Toggle the star on an entry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiaryStar,
	}

	cmd.AddCommand(add, show, list, star)
	return cmd
}

func runDiaryAdd(cmd *cobra.Command, args []string) error {
	content, err := readText(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := openKV(cfg, false)
	if err != nil {
		return err
	}
	defer closeKV()

	date := diaryDate
	if date == "" {
		date = time.Now().Format(storage.DateFormat)
	}

	entry, err := storage.NewDiaryStore(kv).Save(date, content)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved entry for %s\n", entry.Date)
	}
	return nil
}

func runDiaryShow(cmd *cobra.Command, args []string) error {
	date := time.Now().Format(storage.DateFormat)
	if len(args) > 0 {
		date = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := openKV(cfg, false)
	if err != nil {
		return err
	}
	defer closeKV()

	entry, err := storage.NewDiaryStore(kv).Get(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no entry for %s", date)
		}
		return err
	}

	printEntry(cmd, entry)
	return nil
}

func runDiaryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := openKV(cfg, false)
	if err != nil {
		return err
	}
	defer closeKV()

	entries, err := storage.NewDiaryStore(kv).Recent(diaryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No diary entries yet.")
		return nil
	}
	for _, entry := range entries {
		printEntry(cmd, entry)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runDiaryStar(cmd *cobra.Command, args []string) error {
	date := time.Now().Format(storage.DateFormat)
	if len(args) > 0 {
		date = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := openKV(cfg, false)
	if err != nil {
		return err
	}
	defer closeKV()

	starred, err := storage.NewDiaryStore(kv).ToggleStar(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no entry for %s", date)
		}
		return err
	}
	if !quiet {
		if starred {
			fmt.Fprintf(cmd.OutOrStdout(), "★ Starred %s\n", date)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Unstarred %s\n", date)
		}
	}
	return nil
}

func printEntry(cmd *cobra.Command, entry storage.DiaryEntry) {
	header := entry.Date
	if entry.Starred {
		header += " ★"
	}
	if entry.Mood != "" {
		header += " (" + entry.Mood + ")"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", header, entry.Content)
}
