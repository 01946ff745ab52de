// ABOUTME: Diary summary: condenses a chat session into a first-person diary note
// ABOUTME: The one extraction whose backend failures surface to the caller

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/havenjournal/haven/internal/models"
)

const summarySystemPrompt = `Summarize this chat into a brief diary note (3-6 sentences).
- Keep only the most important feelings, events, decisions, and relationship details.
- Use first person ("I").
- Do NOT include advice or next steps, just what was shared or realized.
- If safety concerns appear, state them plainly.
- Keep it simple and readable.`

// Summarize condenses a chat history into a short first-person diary note.
// Unlike the other extractions there is no safe empty fallback: a diary
// entry the user asked to save must not silently come out blank, so errors
// propagate.
func (e *Extractor) Summarize(ctx context.Context, history []models.Message) (string, error) {
	if err := models.ValidateHistory(history); err != nil {
		return "", err
	}

	text, err := e.gen.Generate(ctx, history, summarySystemPrompt)
	if err != nil {
		return "", fmt.Errorf("summarizing chat: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("summarizing chat: empty summary")
	}
	return text, nil
}
