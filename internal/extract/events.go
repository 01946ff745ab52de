// ABOUTME: Event extraction: upcoming events and reminders from a diary note
// ABOUTME: Anchors relative dates against a caller-supplied "today"

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// minEventTextLen guards against extracting events from trivially short notes
const minEventTextLen = 10

// maxExtractedEvents caps how many events one note may yield
const maxExtractedEvents = 3

// UpcomingEvent is one extracted reminder
type UpcomingEvent struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Summary string `json:"summary"`
}

var eventsSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"events": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"date":    {Type: jsonschema.String},
					"summary": {Type: jsonschema.String},
				},
				Required: []string{"date", "summary"},
			},
		},
	},
	Required: []string{"events"},
}

const eventsSystemPrompt = `Extract up to 3 upcoming events/reminders from the user's note.
Return JSON: { "events": [{ "date": "YYYY-MM-DD", "summary": "short description" }] }
- Prefer events within the next 30 days.
- If a weekday is mentioned (e.g., Tuesday) assume the next occurrence of that weekday.
- If no date is clear, skip.
- If the event is clearly in the past, skip it.
- Keep summaries concise (max 12 words).`

// Events extracts up to 3 upcoming events from a diary note. The today
// anchor resolves relative dates like "next Tuesday". Notes shorter than
// minEventTextLen yield no events, as do backend or parse failures.
func (e *Extractor) Events(ctx context.Context, text string, today time.Time) []UpcomingEvent {
	text = strings.TrimSpace(text)
	if len(text) < minEventTextLen {
		return nil
	}

	input := fmt.Sprintf("Today is %s. Text:\n%s", today.Format("2006-01-02"), text)

	out, err := e.gen.GenerateJSON(ctx, userText(input), eventsSystemPrompt, "upcoming_events", eventsSchema)
	if err != nil {
		log.Printf("[Extract] event extraction failed: %v", err)
		return nil
	}

	var parsed struct {
		Events []UpcomingEvent `json:"events"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		log.Printf("[Extract] malformed event extraction output: %v", err)
		return nil
	}

	events := make([]UpcomingEvent, 0, maxExtractedEvents)
	for _, ev := range parsed.Events {
		ev.Date = strings.TrimSpace(ev.Date)
		ev.Summary = strings.TrimSpace(ev.Summary)
		if ev.Date == "" || ev.Summary == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", ev.Date); err != nil {
			continue
		}
		events = append(events, ev)
		if len(events) == maxExtractedEvents {
			break
		}
	}
	return events
}
