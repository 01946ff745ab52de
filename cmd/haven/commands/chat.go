// ABOUTME: Chat command: one conversational turn with the journaling companion
// ABOUTME: Continues the current session and records metrics alongside the reply

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenjournal/haven/internal/core"
	"github.com/havenjournal/haven/internal/models"
	"github.com/havenjournal/haven/internal/storage"
)

var (
	chatNewSession    bool
	chatNoContext     bool
	chatNoAggregation bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the journaling companion",
		Long: `Send a message to the journaling companion and print its reply.

The conversation continues the current session; recent diary entries are
included as background so the companion knows your ongoing journey.

Examples:
  haven chat "Today was rough, I couldn't focus at all"
  echo "I miss home" | haven chat
  haven chat --new "Fresh start"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatNewSession, "new", false, "Start a new session")
	cmd.Flags().BoolVar(&chatNoContext, "no-context", false, "Skip diary context")
	cmd.Flags().BoolVar(&chatNoAggregation, "no-aggregation", false, "Disable multi-persona synthesis")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	message, err := readText(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	kv, closeKV, err := openKV(cfg, true)
	if err != nil {
		return err
	}
	defer closeKV()

	chats := storage.NewChatStore(kv)
	diary := storage.NewDiaryStore(kv)
	metricsLog := storage.NewMetricsStore(kv)

	var session storage.ChatSession
	if chatNewSession {
		session, err = chats.Create("")
	} else {
		session, err = chats.CurrentOrCreate()
	}
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	session, err = chats.AppendMessage(session.ID, models.Message{Role: models.RoleUser, Content: message})
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}

	var diaryContext string
	if !chatNoContext {
		diaryContext, err = diary.Context(cfg.DiaryContextEntries)
		if err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: diary context unavailable: %v\n", err)
		}
	}

	pipeline := core.NewPipeline(client)
	pipeline.SetAggregation(cfg.AggregationEnabled && !chatNoAggregation)

	result, err := pipeline.Chat(cmd.Context(), core.ChatRequest{
		History:      session.Messages,
		DiaryContext: diaryContext,
	})
	if err != nil {
		return err
	}

	if _, err := chats.AppendMessage(session.ID, models.Message{
		Role:    models.RoleAssistant,
		Content: result.AssistantMessage,
	}); err != nil {
		return fmt.Errorf("recording reply: %w", err)
	}
	if err := metricsLog.Append(result.Metrics, time.Now()); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Warning: recording metrics failed: %v\n", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.AssistantMessage)
	if verbose {
		secondaries := ""
		if len(result.Decision.Secondaries) > 0 {
			secondaries = fmt.Sprintf(" (+%v)", result.Decision.Secondaries)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "\n[%s%s] %s\n", result.Decision.Primary, secondaries, result.Decision.Reasons)
	}
	return nil
}

// readText returns the message from args or stdin
func readText(args []string) (string, error) {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text provided")
	}
	return text, nil
}
