// ABOUTME: Aggregator merges multiple persona replies into one synthesized response
// ABOUTME: Quality enhancement only; degrades to the primary reply on any failure
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/havenjournal/haven/internal/models"
)

// Aggregator synthesizes 2-3 persona replies into a single coherent reply
type Aggregator struct {
	gen Generator
}

// NewAggregator creates an aggregator backed by the given generator
func NewAggregator(gen Generator) *Aggregator {
	return &Aggregator{gen: gen}
}

// Aggregate merges the persona responses. Zero responses yield "", a single
// response is returned unchanged, and neither touches the backend. For 2-3
// responses one synthesis call is made; on failure the first (primary)
// response is returned as-is.
func (a *Aggregator) Aggregate(ctx context.Context, responses []models.PersonaResponse, history []models.Message, m models.Metrics) string {
	if len(responses) == 0 {
		return ""
	}
	if len(responses) == 1 {
		return responses[0].Text
	}

	contents := make([]models.Message, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, models.Message{
		Role:    models.RoleUser,
		Content: "Please synthesize the above responses into a single, more nuanced reply.",
	})

	text, err := a.gen.Generate(ctx, contents, a.synthesisPrompt(responses, m))
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("[Aggregator] synthesis failed, using primary response: %v", err)
		return responses[0].Text
	}
	return text
}

// synthesisPrompt builds the one-shot instruction embedding the candidate replies
func (a *Aggregator) synthesisPrompt(responses []models.PersonaResponse, m models.Metrics) string {
	var b strings.Builder

	b.WriteString(`You are synthesizing multiple supportive journal-companion responses into a single, more nuanced and helpful reply.

The responses come from personas with different approaches:
- reflection: gentle exploration and thought-provoking questions
- validator: validation and acknowledgment
- conflict: relationship dynamics and conflict navigation

Combine the best elements into one coherent response that:
- Acknowledges what the user shared
- Asks 1-2 specific follow-up questions (like a therapist would)
- Uses shorter, more digestible sentences
- Guides them toward real-world connections (friends, family, counselors)
- Never positions you as the one helping - you're preparing them to get help from others
- Pays special attention to feelings of isolation, homesickness, or loneliness`)

	if metricsJSON, err := json.Marshal(m); err == nil {
		b.WriteString("\n\nThe user's emotional state: ")
		b.Write(metricsJSON)
	}

	b.WriteString("\n\nCombine these responses:")
	for i, resp := range responses {
		fmt.Fprintf(&b, "\n\nResponse %d (%s):\n%s", i+1, resp.Persona, resp.Text)
	}

	return b.String()
}
